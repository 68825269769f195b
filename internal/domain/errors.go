package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Details returns the wrapped cause, or "" when there is none.
func (e *AppError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Failed to verify photo",
		StatusCode: 500,
	}

	ErrInvalidRequest = &AppError{
		Code:       "INVALID_REQUEST",
		Message:    "Invalid request body",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	// Verification input errors
	ErrImageURLRequired = &AppError{
		Code:       "IMAGE_URL_REQUIRED",
		Message:    "Image URL is required",
		StatusCode: 400,
	}

	ErrInvalidImageURL = &AppError{
		Code:       "INVALID_IMAGE_URL",
		Message:    "Image URL must be an absolute http or https URL",
		StatusCode: 400,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Uploaded image is missing or not a JPEG, PNG or WebP file",
		StatusCode: 400,
	}

	// Analysis failures
	ErrImageFetchFailed = &AppError{
		Code:       "IMAGE_FETCH_FAILED",
		Message:    "Failed to verify photo",
		StatusCode: 500,
	}

	ErrImageTooLarge = &AppError{
		Code:       "IMAGE_TOO_LARGE",
		Message:    "Image exceeds the maximum allowed size",
		StatusCode: 500,
	}
)
