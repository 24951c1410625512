/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Messaging Business Logic Errors
const (
	// ErrRecipientNotFound indicates that the message recipient does not refer to a known user.
	ErrRecipientNotFound = 2101

	// ErrEmptyMessage indicates that a message was submitted with neither text nor an image.
	ErrEmptyMessage = 2102

	// ErrMessageContentTooLong indicates that the message text exceeded the maximum length limit.
	ErrMessageContentTooLong = 2103

	// ErrConversationPeerInvalid indicates that the conversation peer identifier is malformed or unknown.
	ErrConversationPeerInvalid = 2104
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrAlreadyLoggedIn indicates an authenticated user attempted signup or login again.
	ErrAlreadyLoggedIn = 3001

	// ErrInvalidEmail indicates the supplied email address is malformed.
	ErrInvalidEmail = 3002

	// ErrInvalidPassword indicates the supplied password does not meet length requirements.
	ErrInvalidPassword = 3003

	// ErrInvalidFullName indicates the supplied display name is empty or too long.
	ErrInvalidFullName = 3004

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = 3005

	// ErrInvalidCredentials indicates email/password verification failed.
	ErrInvalidCredentials = 3006

	// ErrUserNotFound indicates the requested user account does not exist.
	ErrUserNotFound = 3007

	// ErrUnauthorized indicates the request carries no valid identity.
	ErrUnauthorized = 3008
)

// 4xxx: File and Avatar Errors
const (
	// ErrFileSizeTooLarge indicates an avatar upload exceeded the size limit.
	ErrFileSizeTooLarge = 4001

	// ErrFileTypeInvalid indicates an avatar upload has a disallowed MIME type or extension.
	ErrFileTypeInvalid = 4002

	// ErrFileStorageFailed indicates the object storage operation failed.
	ErrFileStorageFailed = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStorageFailure indicates the durable message/user store rejected an operation.
	ErrStorageFailure = 5001
)
