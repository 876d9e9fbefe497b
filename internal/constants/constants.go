package constants

// Team code generation
const (
	TeamCodeLength = 6
	// MaxTeamCodeRetries is how many extra candidates are drawn when the
	// lookup reports a collision. The last candidate is used regardless.
	MaxTeamCodeRetries = 5
	// MaxTeamCreateAttempts bounds insert retries after the storage layer
	// rejects a code that the lookup had reported as free.
	MaxTeamCreateAttempts = 3
)

// Session
const (
	SessionCookieName = "who_owns_this"
	SessionKey        = "who_owns_this_session"
	SessionMaxAge     = 86400 * 30
)

