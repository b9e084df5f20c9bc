package keystore

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/pavlo-v-chernykh/keystore-go/v4"
)

// JKS serves keys from a Java keystore file. Private-key entries carry a
// PKCS#8 key and a certificate chain; the leaf certificate's thumbprint is
// the lookup key. Trusted-certificate entries index as cert-only, so a lookup
// against them reports a missing private key rather than not-found.
type JKS struct {
	keys     map[string]*rsa.PrivateKey
	certOnly map[string]struct{}
}

// OpenJKS loads the keystore at path, decrypting private-key entries with
// the same password as the store.
func OpenJKS(path string, password []byte) (*JKS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keystore %s: %w", path, err)
	}
	defer f.Close()

	ks := keystore.New()
	if err := ks.Load(f, password); err != nil {
		return nil, fmt.Errorf("loading keystore %s: %w", path, err)
	}

	j := &JKS{
		keys:     make(map[string]*rsa.PrivateKey),
		certOnly: make(map[string]struct{}),
	}

	for _, alias := range ks.Aliases() {
		switch {
		case ks.IsPrivateKeyEntry(alias):
			entry, err := ks.GetPrivateKeyEntry(alias, password)
			if err != nil {
				return nil, fmt.Errorf("reading keystore entry %q: %w", alias, err)
			}
			if len(entry.CertificateChain) == 0 {
				continue
			}
			cert, err := x509.ParseCertificate(entry.CertificateChain[0].Content)
			if err != nil {
				continue
			}
			tp := Thumbprint(cert)

			key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
			if err != nil {
				j.certOnly[tp] = struct{}{}
				continue
			}
			rsaPriv, ok := key.(*rsa.PrivateKey)
			if !ok {
				j.certOnly[tp] = struct{}{}
				continue
			}
			j.keys[tp] = rsaPriv

		case ks.IsTrustedCertificateEntry(alias):
			entry, err := ks.GetTrustedCertificateEntry(alias)
			if err != nil {
				continue
			}
			cert, err := x509.ParseCertificate(entry.Certificate.Content)
			if err != nil {
				continue
			}
			j.certOnly[Thumbprint(cert)] = struct{}{}
		}
	}

	return j, nil
}

func (j *JKS) LookupByThumbprint(thumbprint string) (Key, error) {
	tp := normalizeThumbprint(thumbprint)
	if key, ok := j.keys[tp]; ok {
		return rsaKey{priv: key}, nil
	}
	if _, ok := j.certOnly[tp]; ok {
		return nil, common.ErrNoPrivateKey
	}
	return nil, common.ErrKeyNotFound
}
