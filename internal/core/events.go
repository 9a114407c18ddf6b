package core

import (
	"strconv"
	"strings"

	"foundation/internal/types"
)

const (
	dimensionJobSlug        = 1
	dimensionSearchTerm     = 2
	dimensionSearchCategory = 3
	dimensionSearchLocation = 4
	dimensionSearchWorkType = 5
	dimensionSearchSector   = 6
	dimensionAlertFrequency = 7
)

// SearchDimensions maps search filters onto their custom dimensions. List
// filters are comma-joined.
func SearchDimensions(filters types.Filters) map[int]string {
	return map[int]string{
		dimensionSearchTerm:     filters.Q,
		dimensionSearchCategory: joinIDs(filters.Categories),
		dimensionSearchLocation: joinIDs(filters.Locations),
		dimensionSearchWorkType: joinIDs(filters.WorkTypes),
		dimensionSearchSector:   joinIDs(filters.Sectors),
	}
}

func JobView(jobSlug string) types.Event {
	return jobEvent("view", jobSlug)
}

func JobClick(jobSlug string) types.Event {
	return jobEvent("apply", jobSlug)
}

func JobSearch(filters types.Filters) types.Event {
	return types.Event{
		Category:   types.EventCategoryJobs,
		Action:     "search",
		Dimensions: SearchDimensions(filters),
	}
}

func AlertConfirm(frequency string, filters types.Filters) types.Event {
	return AlertEvent(types.AlertActionConfirm, frequency, filters)
}

func AlertSubscribe(frequency string, filters types.Filters) types.Event {
	return AlertEvent(types.AlertActionSubscribe, frequency, filters)
}

func AlertUnsubscribe(frequency string, filters types.Filters) types.Event {
	return AlertEvent(types.AlertActionUnsubscribe, frequency, filters)
}

func AlertUpdate(frequency string, filters types.Filters) types.Event {
	return AlertEvent(types.AlertActionUpdate, frequency, filters)
}

// AlertEvent builds the alert event for action, carrying the alert frequency
// next to the search dimensions.
func AlertEvent(action types.AlertAction, frequency string, filters types.Filters) types.Event {
	dimensions := SearchDimensions(filters)
	dimensions[dimensionAlertFrequency] = frequency
	return types.Event{
		Category:   types.EventCategoryAlerts,
		Action:     string(action),
		Dimensions: dimensions,
	}
}

func WeeklySubscribe() types.Event {
	return types.Event{
		Category: types.EventCategoryWeeklyEmail,
		Action:   "signup",
	}
}

func Share(channel string) types.Event {
	return types.Event{
		Category: types.EventCategorySocial,
		Action:   "share",
		Label:    channel,
	}
}

// PageView builds a page view hit. An empty path lets the collector use the
// document location.
func PageView(path string) types.Event {
	return types.Event{
		Category: types.EventCategoryPageView,
		Page:     path,
	}
}

func jobEvent(action string, jobSlug string) types.Event {
	return types.Event{
		Category:   types.EventCategoryJobs,
		Action:     action,
		Dimensions: map[int]string{dimensionJobSlug: jobSlug},
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
