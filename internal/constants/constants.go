package constants

// Session / context keys
const (
	SessionCookieName  = "steamtrack_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUser     = "current_user"
	ContextKeyProject  = "project"
	ContextKeyTask     = "task"
	ContextKeyMeeting  = "meeting"
	ContextKeyResource = "resource"
)

// Field limits
const (
	MinPasswordLength     = 8
	MaxUsernameLength     = 150
	MaxProjectNameLength  = 255
	MaxTaskNameLength     = 100
	MaxResourceNameLength = 255
)

// Join key generation
const (
	JoinKeyLength   = 5
	JoinKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// MaxJoinKeyAttempts bounds the generate-then-insert retry loop when the
	// unique index rejects a collision.
	MaxJoinKeyAttempts = 10
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
