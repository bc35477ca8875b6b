package handler

const (
	errInternalServer    = "Internal server error"
	errNotAuthenticated  = "Not authenticated"
	errFetchContent      = "Failed to fetch content"
	errInvalidCreds      = "Invalid credentials"
	errEmailNotVerified  = "Please verify your email before logging in. Check your inbox for the verification link."
	errVerificationToken = "Invalid or expired verification token"
	errAccountExists     = "User already exists with this email"
)
