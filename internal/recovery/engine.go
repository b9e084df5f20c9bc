package recovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/pwrecover/internal/catalog"
	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/dmitrijs2005/pwrecover/internal/keystore"
	"github.com/dmitrijs2005/pwrecover/internal/logging"
)

const (
	msgResetFailure = "archived reset failed - use a prior password for this computer"
	msgNoPrivateKey = "no private key available for this certificate"
	msgDecryptFail  = "decryption failed"
)

// Engine recovers passwords from sealed archives. It holds only read-only
// collaborators, so per-record recovery is a pure function of (record, key
// provider) and safe to invoke in any order.
type Engine struct {
	keys keystore.Provider
	log  logging.Logger
}

func New(keys keystore.Provider, log logging.Logger) *Engine {
	return &Engine{keys: keys, log: log}
}

// Recover runs the decrypt-and-verify protocol for one record. Every branch
// is terminal: the returned Result always exists, and no failure escapes as
// an error past the per-record boundary.
func (e *Engine) Recover(ctx context.Context, rec catalog.Record) Result {
	// A reset-failure sentinel records that a reset went wrong, not a
	// secret. It is never read or decrypted.
	if rec.IsResetFailure() {
		return Result{Record: rec, Status: StatusResetFailure, Password: msgResetFailure}
	}

	ciphertext, err := os.ReadFile(rec.Path)
	if err != nil {
		return Result{Record: rec, Status: StatusReadFailure,
			Password: fmt.Sprintf("read failure: %v", err)}
	}

	key, err := e.keys.LookupByThumbprint(rec.Thumbprint)
	if err != nil {
		if errors.Is(err, common.ErrKeyNotFound) || errors.Is(err, common.ErrNoPrivateKey) {
			return Result{Record: rec, Status: StatusNoPrivateKey, Password: msgNoPrivateKey}
		}
		return Result{Record: rec, Status: StatusNoPrivateKey,
			Password: fmt.Sprintf("%s: %v", msgNoPrivateKey, err)}
	}

	plaintext, err := key.Decrypt(ciphertext)
	if err != nil {
		return Result{Record: rec, Status: StatusDecryptFailure, Password: msgDecryptFail}
	}

	if len(plaintext) < common.NonceSize {
		return Result{Record: rec, Status: StatusIntegrityFailure,
			Password: "integrity check failed: " + string(plaintext)}
	}

	nonce := string(plaintext[:common.NonceSize])
	candidate := string(plaintext[common.NonceSize:])

	if !nonceBindsRecord(nonce, rec) {
		return Result{Record: rec, Status: StatusIntegrityFailure,
			Password: "integrity check failed: " + candidate}
	}

	return Result{Record: rec, Valid: true, Status: StatusOK, Password: candidate}
}

// RecoverAll produces one result per record, in order. Individual failures
// are logged and carried in the results; one bad archive never prevents
// recovery of the others.
func (e *Engine) RecoverAll(ctx context.Context, recs []catalog.Record) []Result {
	results := make([]Result, 0, len(recs))
	for _, rec := range recs {
		res := e.Recover(ctx, rec)
		if !res.Valid {
			e.log.Warn(ctx, "archive not recovered",
				"name", rec.Name(), "status", string(res.Status))
		}
		results = append(results, res)
	}
	return results
}

// nonceBindsRecord checks that the decrypted nonce was sealed for this exact
// archive. The nonce is the file name truncated or space-padded to 60 bytes.
// The non-thumbprint portion must match exactly; the thumbprint region
// tolerates the sealing tool's convention of writing a literal '*' or a
// re-derived prefix there. Deliberately explicit prefix checks, not a glob
// engine: this is a security boundary.
func nonceBindsRecord(nonce string, rec catalog.Record) bool {
	stem := rec.Stem()

	if len(stem) >= common.NonceSize {
		return nonce == stem[:common.NonceSize]
	}
	if nonce[:len(stem)] != stem {
		return false
	}

	tail := strings.TrimRight(nonce[len(stem):], " \x00")
	tail = strings.TrimSuffix(tail, "*")
	if tail == "" {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(rec.Thumbprint), strings.ToUpper(tail))
}
