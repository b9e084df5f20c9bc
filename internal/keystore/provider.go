// Package keystore resolves private-key capabilities by certificate
// thumbprint. The archive sealing scheme is plain PKCS#1 v1.5 RSA, chosen so
// hardware-token-backed keys that only support that mode still work; every
// provider hands out the same narrow Decrypt capability and nothing else.
package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"strings"
)

// Key is the capability a successful lookup returns: a single decrypt
// operation over the resolved private key. No key material leaves the
// provider.
type Key interface {
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Provider looks up a decrypt capability by certificate thumbprint.
//
// Lookup errors are sentinel-classified: common.ErrKeyNotFound when no
// certificate matches, common.ErrNoPrivateKey when a certificate matches but
// carries no usable private key (public-only certificate, or key unavailable
// to the current security context).
type Provider interface {
	LookupByThumbprint(thumbprint string) (Key, error)
}

// Thumbprint returns the uppercase hexadecimal SHA-1 fingerprint of the
// certificate, the same form the sealing tool writes into archive names.
func Thumbprint(cert *x509.Certificate) string {
	sum := sha1.Sum(cert.Raw)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func normalizeThumbprint(tp string) string {
	return strings.ToUpper(strings.ReplaceAll(tp, " ", ""))
}

type rsaKey struct {
	priv *rsa.PrivateKey
}

func (k rsaKey) Decrypt(ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, k.priv, ciphertext)
}
