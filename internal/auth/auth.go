// Package auth holds the opaque API keys passed to the upstream data services.
package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rickgao/disclosure-data/internal/model"
)

// Scheme describes how a key is presented to a service.
type Scheme int

const (
	// TokenScheme sends "Authorization: Token <key>" (Quiver).
	TokenScheme Scheme = iota
	// RawScheme sends "Authorization: <key>" (sec-api.io).
	RawScheme
)

// Credential is an opaque API key. The zero value is absent.
type Credential struct {
	Scheme Scheme
	key    string
}

// NewCredential wraps key. Surrounding whitespace is dropped.
func NewCredential(scheme Scheme, key string) Credential {
	return Credential{Scheme: scheme, key: strings.TrimSpace(key)}
}

// Present reports whether a key is configured.
func (c Credential) Present() bool { return c.key != "" }

// Apply sets the Authorization header on req.
func (c Credential) Apply(req *http.Request) {
	if !c.Present() {
		return
	}
	switch c.Scheme {
	case TokenScheme:
		req.Header.Set("Authorization", "Token "+c.key)
	default:
		req.Header.Set("Authorization", c.key)
	}
}

// String redacts the key so credentials are safe to log.
func (c Credential) String() string {
	if !c.Present() {
		return "<absent>"
	}
	if len(c.key) <= 4 {
		return "****"
	}
	return "****" + c.key[len(c.key)-4:]
}

// Credentials holds one key per upstream service. Loaded once at startup and
// read-only afterwards.
type Credentials struct {
	Quiver Credential
	SECAPI Credential
}

// For returns the credential for service.
func (c Credentials) For(service model.Service) Credential {
	switch service {
	case model.Quiver:
		return c.Quiver
	case model.SECAPI:
		return c.SECAPI
	default:
		return Credential{}
	}
}

// SchemeFor returns the header scheme a service expects.
func SchemeFor(service model.Service) Scheme {
	if service == model.Quiver {
		return TokenScheme
	}
	return RawScheme
}

// LoadCredential returns the credential for service from an inline key or,
// when key is empty, from the file at keyPath. Both empty yields an absent
// credential; that is not an error here.
func LoadCredential(service model.Service, key, keyPath string) (Credential, error) {
	scheme := SchemeFor(service)
	if strings.TrimSpace(key) != "" {
		return NewCredential(scheme, key), nil
	}
	if keyPath == "" {
		return Credential{Scheme: scheme}, nil
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		return Credential{}, fmt.Errorf("read %s key file: %w", service, err)
	}

	cred := NewCredential(scheme, string(data))
	if !cred.Present() {
		return Credential{}, fmt.Errorf("%s key file %s is empty", service, keyPath)
	}
	return cred, nil
}
