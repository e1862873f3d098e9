package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Index errors
	ErrIndexRequest       = fmt.Errorf("index request failed")
	ErrInvalidResponse    = fmt.Errorf("invalid index response")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Filesystem errors
	ErrMediaNotFound   = fmt.Errorf("media file not found")
	ErrNoExtension     = fmt.Errorf("media file has no extension")
	ErrDirectoryCreate = fmt.Errorf("failed to create playlist directory")

	// Persistence errors
	ErrRunNotFound = fmt.Errorf("run not found")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidFlag  = fmt.Errorf("invalid flag value")
)
