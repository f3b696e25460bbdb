package filetype

import "errors"

var (
	// ErrUnknownType is returned when content cannot be identified and no text fallback applies
	ErrUnknownType = errors.New("unknown file type")

	// ErrDisallowedType is returned when the resolved type, or the filename extension, is not permitted
	ErrDisallowedType = errors.New("file type is not allowed")

	// ErrMIMEMismatch is returned when the declared MIME type contradicts the sniffed content
	ErrMIMEMismatch = errors.New("declared MIME type does not match content")

	// ErrExtensionMismatch is returned when the filename extension contradicts the resolved type
	ErrExtensionMismatch = errors.New("file extension does not match content type")
)
