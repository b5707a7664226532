package util

import "errors"

var (
	ErrMissingIdentifiers   = errors.New("course ID and user ID are required")
	ErrMissingEmail         = errors.New("email is required")
	ErrUnsupportedLanguage  = errors.New("unsupported language")
	ErrMalformedTranslation = errors.New("malformed translation response")
	ErrRoleLookupFailed     = errors.New("role lookup failed")
)
