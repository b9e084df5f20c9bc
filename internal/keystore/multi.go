package keystore

import (
	"errors"

	"github.com/dmitrijs2005/pwrecover/internal/common"
)

// Multi chains providers in order; the first usable key wins. A certificate
// found anywhere without key material still reports common.ErrNoPrivateKey
// rather than not-found, so diagnostics stay accurate across sources.
type Multi struct {
	providers []Provider
}

func NewMulti(providers ...Provider) *Multi {
	return &Multi{providers: providers}
}

func (m *Multi) LookupByThumbprint(thumbprint string) (Key, error) {
	sawCertOnly := false
	for _, p := range m.providers {
		key, err := p.LookupByThumbprint(thumbprint)
		if err == nil {
			return key, nil
		}
		if errors.Is(err, common.ErrNoPrivateKey) {
			sawCertOnly = true
		}
	}
	if sawCertOnly {
		return nil, common.ErrNoPrivateKey
	}
	return nil, common.ErrKeyNotFound
}
