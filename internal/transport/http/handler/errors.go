package handler

const (
	errInternalServer      = "Internal server error"
	errUserNotFound        = "User not found!"
	errInvalidPassword     = "Invalid password"
	errInvalidRefreshToken = "Invalid refresh token"
	errEmailRegistered     = "Email is already registered"
	errPhoneRegistered     = "Phone number is already registered"
	errPasswordTooShort    = "Password must be at least 8 characters long"
	errInvalidBody         = "Invalid request body"
	errUnauthorized        = "Unauthorized"
)
