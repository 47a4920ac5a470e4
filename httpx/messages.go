package httpx

var (
	MsgErrGeneric            = "Internal server error"
	MsgErrNotFound           = "Not found"
	MsgErrBadRequest         = "Invalid request"
	MsgErrRequired           = "Value is required"
	MsgErrDuplicate          = "Value already exists"
	MsgErrTooShort           = "Value must be at least %s characters"
	MsgErrTooLong            = "Value must be less than %s characters"
	MsgErrInvalid            = "Invalid value"
	MsgErrInvalidEmail       = "Enter a valid email address"
	MsgErrAlphanumMixed      = "Value must contain both letters and numbers"
	MsgErrMismatch           = "Values do not match"
	MsgErrBadCredentials     = "Invalid email or password"
	MsgErrUnavailable        = "Listings are unavailable right now. Try again shortly"
	MsgErrInvalidSearch      = "Some search filters are invalid"
	MsgErrLogInRequired      = "Log in to send a message"
	MsgErrApartmentNotFound  = "This property does not exist or was removed"
	MsgErrWorkersUnavailable = "No available workers"

	MsgSuccessMessageSent = "Message sent"
	MsgSuccessUserCreated = "Account created. You can now log in"
	MsgSuccessContactSent = "Thanks, we will get back to you soon"
)
