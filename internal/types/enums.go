package types

type EventCategory string

const (
	EventCategoryJobs        EventCategory = "jobs"
	EventCategoryAlerts      EventCategory = "alerts"
	EventCategoryWeeklyEmail EventCategory = "weekly-email"
	EventCategorySocial      EventCategory = "social"
	EventCategoryPageView    EventCategory = "pageview"
)

type AlertAction string

const (
	AlertActionConfirm     AlertAction = "confirm"
	AlertActionSubscribe   AlertAction = "subscribe"
	AlertActionUnsubscribe AlertAction = "unsubscribe"
	AlertActionUpdate      AlertAction = "update"
)

type TrackerKind string

const (
	TrackerKindLog  TrackerKind = "log"
	TrackerKindHTTP TrackerKind = "http"
)

type UserFileFormat string

const (
	UserFileFormatYAML UserFileFormat = "yaml"
	UserFileFormatTOML UserFileFormat = "toml"
	UserFileFormatJSON UserFileFormat = "json"
)
