package constants

// Context keys
const (
	ContextKeyActor = "actor"
)

// Session
const (
	SessionCookieName = "productivity_session"
	SessionTokenKey   = "session_token"
	SessionMaxAgeDays = 7
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
