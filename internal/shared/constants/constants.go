package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderInternalToken = "X-Internal-Token"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	ContextKeyPrincipal = "principal"

	// Ticket identifiers are TK- followed by six zero-padded digits.
	TicketIDPrefix = "TK-"
	TicketIDDigits = 6

	// Object key layout for comment attachments: tickets/<ticketId>/comments/<uuid><ext>
	AttachmentKeyPrefix = "tickets"

	PublicIntakeConfirmation = "Your request has been received and is pending review by our team."

	// Table names
	TableClients           = "clients"
	TableUsers             = "users"
	TableIdentities        = "identities"
	TableServiceTags       = "service_tags"
	TableTickets           = "tickets"
	TableTicketServiceTags = "ticket_service_tags"
	TableComments          = "comments"
	TableTicketUpdates     = "ticket_updates"
	TableTicketSequences   = "ticket_sequences"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
