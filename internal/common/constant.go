// Package common contains shared constants and sentinel errors used across
// pwrecover components.
package common

const (
	// NameDelimiter separates the four segments of an archive file name.
	NameDelimiter = "+"

	// NameSegments is the exact segment count of a well-formed archive name.
	NameSegments = 4

	// NonceSize is the fixed length, in bytes, of the nonce the sealing tool
	// prepends to the password before encryption. The nonce is the archive's
	// own file name truncated or space-padded to this length.
	NonceSize = 60

	// ResetFailureThumbprint is the sentinel written in place of a certificate
	// thumbprint when the archive records a failed password reset rather than
	// a real secret. Such archives are never decrypted.
	ResetFailureThumbprint = "PASSWORD-RESET-FAILURE"

	// DefaultUserPattern is the account the tool recovers when no user
	// pattern is given.
	DefaultUserPattern = "Administrator"
)
