package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyTask   = "task"
	ContextKeyPage   = "page"

	SessionName          = "exeai_session"
	SessionKeyGmailState = "gmail_oauth_state"
)

// Authentication rules
const (
	MinPasswordLength = 8
	TrialPeriodDays   = 14
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// External integrations
const (
	// GmailMaxMessages caps the inbox fetch to a single page of summaries.
	GmailMaxMessages = 20

	// WhatsAppBufferSize caps the in-memory inbound message buffer.
	WhatsAppBufferSize = 50
)
