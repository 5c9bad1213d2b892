package handlers

// Response codes. Clients match on these strings.
const (
	CodeRegistrationSuccess = "REGISTRATION-SUCCESS"
	CodeRegistrationFailed  = "REGISTRATION-FAILED"

	CodeUserNotRegistered = "USER-NOT-REGISTERED"
	CodePasswordIncorrect = "PASSWORD-INCORRECT"
	CodeLoginSuccess      = "USER-LOGIN-SUCCESS"
	CodeLoginFailed       = "LOGIN-FAILED"

	CodeEmailExists      = "EMAIL-EXISTS"
	CodeEmailNotExisting = "EMAIL-NOT-EXISTING"
	CodeCheckEmailFailed = "CHECK-EMAIL-FAILED"

	CodeUserFound    = "USER-FOUND"
	CodeUserNotFound = "USER-NOT-FOUND"

	CodeEnrollmentSuccessful = "ENROLLMENT-SUCCESSFUL"
	CodeEnrollmentFailed     = "ENROLLMENT-FAILED"

	CodePasswordMissing  = "PASSWORD-MISSING"
	CodePasswordTooShort = "PASSWORD-TOO-SHORT"
	CodePasswordUpdated  = "USER-PASSWORD-SUCCESSFULLY-UPDATED"

	CodeProfileUpdated = "USER-PROFILE-UPDATED"

	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeInvalidRequest = "INVALID-REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
)
