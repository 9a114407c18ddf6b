package app

import "foundation/internal/types"

type DateRequest struct {
	Value       string
	AsTimestamp bool
}

type DateResult struct {
	Input   string
	Instant types.Instant
	ISO     string
}

type AuthCheckRequest struct {
	UserPath string
	Role     string
	All      []string
	Any      []string
}

type AuthCheckMode string

const (
	AuthCheckModeRole AuthCheckMode = "role"
	AuthCheckModeAll  AuthCheckMode = "all"
	AuthCheckModeAny  AuthCheckMode = "any"
)

type AuthCheckResult struct {
	Mode      AuthCheckMode
	Requested []string
	Held      []string
	Unknown   []string
	Allowed   bool
}

type UserAppRequest struct {
	UserPath string
}

type UserAppResult struct {
	App        string
	Roles      []string
	AuthLoaded bool
}

type TokenStatus struct {
	Present bool
}

type TrackResult struct {
	Sent  bool
	Event types.Event
}
