package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// ContextKeyCurrentUser is the key under which the loaded user model is stored
// in the request context by auth middleware.
const ContextKeyCurrentUser = "current_user"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "plan_session"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ReportingWindowDays is the number of weekdays covered by every report.
const ReportingWindowDays = 10

// WindowScanDays is the maximum number of calendar days scanned when
// collecting the reporting window.
const WindowScanDays = 14

// DateKeyFormat is the canonical date key used in report payloads and
// entry lookups.
const DateKeyFormat = "2006-01-02"

// ImportDateFormats are the accepted day/month/year layouts for bulk import
// rows, zero-padded and not.
var ImportDateFormats = []string{"02/01/2006", "2/1/2006"}

// ImportRowColumns is the expected number of columns in an import row:
// email, date, location code, note, availability code.
const ImportRowColumns = 5
