package handler

const (
	errInternalServer     = "Server Error"
	errInvalidCredentials = "Invalid Credentials"
	errNotVerified        = "Your account has not been verified."
	errTokenInvalid       = "Password reset token is invalid or has expired"
	errDuplicateEmail     = "Email is already registered"
	errBookNotFound       = "Book not found"
)
