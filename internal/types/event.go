package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MaxDimension is the highest custom dimension index an event may carry.
const MaxDimension = 9

// Event is a flat analytics event description.
type Event struct {
	Category   EventCategory
	Action     string
	Label      string
	Page       string
	Dimensions map[int]string
}

// IsPageView reports whether the event is a page view hit rather than an
// event hit.
func (e Event) IsPageView() bool {
	return e.Category == EventCategoryPageView
}

// Fields flattens the event to its wire keys. Empty values are omitted.
func (e Event) Fields() map[string]string {
	fields := map[string]string{}
	if e.Category != "" {
		fields["category"] = string(e.Category)
	}
	if e.Action != "" {
		fields["action"] = e.Action
	}
	if e.Label != "" {
		fields["label"] = e.Label
	}
	if e.Page != "" {
		fields["page"] = e.Page
	}
	for index, value := range e.Dimensions {
		if value == "" || index < 1 || index > MaxDimension {
			continue
		}
		fields[fmt.Sprintf("dimension%d", index)] = value
	}
	return fields
}

// DimensionIndexes returns the populated dimension indexes in ascending order.
func (e Event) DimensionIndexes() []int {
	indexes := make([]int, 0, len(e.Dimensions))
	for index, value := range e.Dimensions {
		if value != "" && index >= 1 && index <= MaxDimension {
			indexes = append(indexes, index)
		}
	}
	sort.Ints(indexes)
	return indexes
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields())
}

// ClickTarget is the element an apply click originated from.
type ClickTarget struct {
	TagName string
}
