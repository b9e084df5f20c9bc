package keystore

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"golang.org/x/crypto/ssh"
)

// PEMDir serves keys from a directory of PEM files: certificates plus PKCS#1,
// PKCS#8 or OpenSSH private keys in any file layout. Certificates are indexed
// by thumbprint; keys attach to certificates by public-key match, so a key
// and its certificate may live in separate files.
type PEMDir struct {
	certs map[string]*x509.Certificate
	keys  map[string]*rsa.PrivateKey
}

// OpenPEMDir scans dir once and builds the thumbprint index. Files that are
// not PEM, and PEM blocks of other types, are ignored.
func OpenPEMDir(dir string) (*PEMDir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading key directory %s: %w", dir, err)
	}

	p := &PEMDir{
		certs: make(map[string]*x509.Certificate),
		keys:  make(map[string]*rsa.PrivateKey),
	}
	var loose []*rsa.PrivateKey

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		rest := data
		for {
			block, remainder := pem.Decode(rest)
			if block == nil {
				break
			}
			rest = remainder

			switch block.Type {
			case "CERTIFICATE":
				cert, err := x509.ParseCertificate(block.Bytes)
				if err != nil {
					continue
				}
				p.certs[Thumbprint(cert)] = cert
			case "RSA PRIVATE KEY":
				key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
				if err != nil {
					continue
				}
				loose = append(loose, key)
			case "PRIVATE KEY":
				key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
				if err != nil {
					continue
				}
				if rsaKey, ok := key.(*rsa.PrivateKey); ok {
					loose = append(loose, rsaKey)
				}
			case "OPENSSH PRIVATE KEY":
				key, err := ssh.ParseRawPrivateKey(pem.EncodeToMemory(block))
				if err != nil {
					continue
				}
				if rsaKey, ok := key.(*rsa.PrivateKey); ok {
					loose = append(loose, rsaKey)
				}
			}
		}
	}

	for tp, cert := range p.certs {
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			continue
		}
		for _, key := range loose {
			if pub.Equal(&key.PublicKey) {
				p.keys[tp] = key
				break
			}
		}
	}

	return p, nil
}

func (p *PEMDir) LookupByThumbprint(thumbprint string) (Key, error) {
	tp := normalizeThumbprint(thumbprint)
	if _, ok := p.certs[tp]; !ok {
		return nil, common.ErrKeyNotFound
	}
	key, ok := p.keys[tp]
	if !ok {
		return nil, common.ErrNoPrivateKey
	}
	return rsaKey{priv: key}, nil
}
