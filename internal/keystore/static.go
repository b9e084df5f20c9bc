package keystore

import (
	"crypto/rsa"

	"github.com/dmitrijs2005/pwrecover/internal/common"
)

// Static is an in-memory provider. It backs tests and ad-hoc wiring where
// keys are already parsed.
type Static struct {
	keys     map[string]*rsa.PrivateKey
	certOnly map[string]struct{}
}

func NewStatic() *Static {
	return &Static{
		keys:     make(map[string]*rsa.PrivateKey),
		certOnly: make(map[string]struct{}),
	}
}

// Add registers a private key under the given thumbprint.
func (s *Static) Add(thumbprint string, key *rsa.PrivateKey) {
	s.keys[normalizeThumbprint(thumbprint)] = key
}

// AddCertOnly registers a thumbprint as known but without private key
// material, mirroring a public-only certificate in a real store.
func (s *Static) AddCertOnly(thumbprint string) {
	s.certOnly[normalizeThumbprint(thumbprint)] = struct{}{}
}

func (s *Static) LookupByThumbprint(thumbprint string) (Key, error) {
	tp := normalizeThumbprint(thumbprint)
	if key, ok := s.keys[tp]; ok {
		return rsaKey{priv: key}, nil
	}
	if _, ok := s.certOnly[tp]; ok {
		return nil, common.ErrNoPrivateKey
	}
	return nil, common.ErrKeyNotFound
}
