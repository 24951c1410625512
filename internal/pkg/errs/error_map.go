/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging Business Logic Errors
	ErrRecipientNotFound:       {Code: ErrRecipientNotFound, Message: "Recipient not found.", Status: http.StatusNotFound},
	ErrEmptyMessage:            {Code: ErrEmptyMessage, Message: "Message cannot be empty.", Status: http.StatusBadRequest},
	ErrMessageContentTooLong:   {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrConversationPeerInvalid: {Code: ErrConversationPeerInvalid, Message: "Unknown conversation partner.", Status: http.StatusNotFound},

	// 3xxx: User, Session, and Security Errors
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in.", Status: http.StatusBadRequest},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address.", Status: http.StatusBadRequest},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Password must be between 6 and 50 characters.", Status: http.StatusBadRequest},
	ErrInvalidFullName:    {Code: ErrInvalidFullName, Message: "Invalid display name.", Status: http.StatusBadRequest},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Email is already registered.", Status: http.StatusConflict},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: File and Avatar Errors
	ErrFileSizeTooLarge:  {Code: ErrFileSizeTooLarge, Message: "File is too large.", Status: http.StatusBadRequest},
	ErrFileTypeInvalid:   {Code: ErrFileTypeInvalid, Message: "Unsupported image type.", Status: http.StatusBadRequest},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusBadGateway},

	// 5xxx: Internal System Errors
	ErrUnknown:        {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageFailure: {Code: ErrStorageFailure, Message: "Could not save your message. Please try again.", Status: http.StatusInternalServerError},
}
