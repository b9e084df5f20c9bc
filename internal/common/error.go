package common

import "errors"

// Sentinel errors shared by the catalog, keystore and CLI layers. Callers
// match them with errors.Is.
var (
	// Catalog-level errors. These are pre-condition failures and stop the
	// whole run; each gets a distinct diagnostic.
	ErrPathNotFound    = errors.New("archive directory not found")
	ErrNoComputerMatch = errors.New("no archives match the computer pattern")
	ErrNoUserMatch     = errors.New("no archives match the user pattern")

	// ErrMalformedName marks a file whose name does not split into exactly
	// four segments. Such files are warned about and skipped, never fatal.
	ErrMalformedName = errors.New("malformed archive name")

	// Keystore errors.
	ErrKeyNotFound  = errors.New("no certificate matches the thumbprint")
	ErrNoPrivateKey = errors.New("certificate has no usable private key")
)
