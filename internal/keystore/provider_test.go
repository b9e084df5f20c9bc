package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// genCert creates a throwaway self-signed certificate for provider tests.
func genCert(t *testing.T, cn string) (*rsa.PrivateKey, *x509.Certificate) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDataEncipherment,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return key, cert
}

func TestThumbprint_UppercaseHex(t *testing.T) {
	_, cert := genCert(t, "thumbprint")

	tp := Thumbprint(cert)
	assert.Len(t, tp, 40, "SHA-1 thumbprint is 40 hex chars")
	assert.Equal(t, normalizeThumbprint(tp), tp)
}

func TestStatic_LookupClassification(t *testing.T) {
	key, cert := genCert(t, "static")
	tp := Thumbprint(cert)

	s := NewStatic()
	s.Add(tp, key)
	s.AddCertOnly("AA00")

	got, err := s.LookupByThumbprint(tp)
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = s.LookupByThumbprint("aa00")
	assert.True(t, errors.Is(err, common.ErrNoPrivateKey))

	_, err = s.LookupByThumbprint("BB11")
	assert.True(t, errors.Is(err, common.ErrKeyNotFound))
}

func TestKey_DecryptRoundTrip(t *testing.T) {
	key, cert := genCert(t, "roundtrip")

	s := NewStatic()
	s.Add(Thumbprint(cert), key)

	capability, err := s.LookupByThumbprint(Thumbprint(cert))
	require.NoError(t, err)

	secret := []byte("Summer2024!")
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &key.PublicKey, secret)
	require.NoError(t, err)

	plaintext, err := capability.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, secret, plaintext)
}

func TestKey_DecryptWrongKeyFails(t *testing.T) {
	keyA, certA := genCert(t, "a")
	keyB, _ := genCert(t, "b")

	s := NewStatic()
	s.Add(Thumbprint(certA), keyB) // wrong key behind the right thumbprint

	capability, err := s.LookupByThumbprint(Thumbprint(certA))
	require.NoError(t, err)

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, &keyA.PublicKey, []byte("secret"))
	require.NoError(t, err)

	_, err = capability.Decrypt(ciphertext)
	assert.Error(t, err)
}

func TestMulti_ChainsAndClassifies(t *testing.T) {
	key, cert := genCert(t, "multi")
	tp := Thumbprint(cert)

	certOnly := NewStatic()
	certOnly.AddCertOnly(tp)
	certOnly.AddCertOnly("CC22")

	withKey := NewStatic()
	withKey.Add(tp, key)

	m := NewMulti(certOnly, withKey)

	// A later provider with real key material beats an earlier cert-only hit.
	got, err := m.LookupByThumbprint(tp)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Cert seen somewhere without a key: no-private-key, not not-found.
	_, err = m.LookupByThumbprint("CC22")
	assert.True(t, errors.Is(err, common.ErrNoPrivateKey))

	_, err = m.LookupByThumbprint("DD33")
	assert.True(t, errors.Is(err, common.ErrKeyNotFound))
}
