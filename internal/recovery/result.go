// Package recovery decrypts sealed archives and verifies the embedded nonce
// before a recovered password is considered trustworthy.
package recovery

import "github.com/dmitrijs2005/pwrecover/internal/catalog"

// Status classifies the outcome of recovering one archive.
type Status string

const (
	StatusOK               Status = "ok"
	StatusResetFailure     Status = "reset_failure"
	StatusReadFailure      Status = "read_failure"
	StatusNoPrivateKey     Status = "no_private_key"
	StatusDecryptFailure   Status = "decrypt_failure"
	StatusIntegrityFailure Status = "integrity_failure"
)

// Result is produced for every record, never omitted. When Valid is false,
// Password holds a structured failure message instead of a secret; an
// integrity failure still surfaces the mismatched payload for diagnosis.
// Results are immutable after creation and never persisted with the
// plaintext.
type Result struct {
	Record   catalog.Record
	Valid    bool
	Password string
	Status   Status
}
