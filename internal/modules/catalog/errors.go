package catalog

import "errors"

// Failure taxonomy of the catalog. Handlers map these to HTTP codes; anything
// else that escapes the service is a backend failure and its message is
// passed through to the caller unchanged.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrNotOwner             = errors.New("not owner")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrUploadFailed         = errors.New("upload failed")
	ErrStorageInconsistency = errors.New("storage inconsistency")
)
