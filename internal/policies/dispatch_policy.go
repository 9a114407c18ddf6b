package policies

import (
	"strings"

	"foundation/internal/types"
)

const anchorTagName = "a"

// AllowJobView suppresses views of pages without a job slug.
func AllowJobView(slug string) bool {
	return slug != ""
}

// AllowJobClick only lets apply clicks on anchors with a job slug through.
func AllowJobClick(target types.ClickTarget, slug string) bool {
	return strings.ToLower(target.TagName) == anchorTagName && slug != ""
}

func AllowShare(channel string) bool {
	return channel != ""
}
