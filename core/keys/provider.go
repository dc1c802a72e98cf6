package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider supplies a key pair for a named participant.
type Provider interface {
	KeyPairFor(name string) (*KeyPair, error)
}

// FileProvider generates a fresh pair per participant per run and writes
// both PEM halves under <dir>/<lowercased-name>/. An existing pair for
// the same name is overwritten; no reuse across runs is guaranteed.
type FileProvider struct {
	Dir string
}

const (
	privateKeyFile = "private.pem"
	publicKeyFile  = "public.pem"
)

func (p *FileProvider) KeyPairFor(name string) (*KeyPair, error) {
	kp, err := Generate()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(p.Dir, strings.ToLower(name))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create key dir for %q: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, privateKeyFile), []byte(kp.PrivateKeyPEM), 0600); err != nil {
		return nil, fmt.Errorf("write private key for %q: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, publicKeyFile), []byte(kp.PublicKeyPEM), 0644); err != nil {
		return nil, fmt.Errorf("write public key for %q: %w", name, err)
	}
	return kp, nil
}

// EnvProvider loads one PEM private key from an environment variable and
// serves it for every participant. Intended for non-interactive runs
// where key material is injected by the deployment.
type EnvProvider struct {
	Var string
}

func (p *EnvProvider) KeyPairFor(name string) (*KeyPair, error) {
	pemText := os.Getenv(p.Var)
	if pemText == "" {
		return nil, errors.New(p.Var + " not set in environment")
	}
	priv, err := ParsePrivateKeyPEM(pemText)
	if err != nil {
		return nil, err
	}
	return fromPrivate(priv)
}

// MemoryProvider generates pairs on demand and keeps them in memory,
// one per name. Used by tests and the self-contained demo path.
type MemoryProvider struct {
	pairs map[string]*KeyPair
}

func (p *MemoryProvider) KeyPairFor(name string) (*KeyPair, error) {
	key := strings.ToLower(name)
	if kp, ok := p.pairs[key]; ok {
		return kp, nil
	}
	kp, err := Generate()
	if err != nil {
		return nil, err
	}
	if p.pairs == nil {
		p.pairs = make(map[string]*KeyPair)
	}
	p.pairs[key] = kp
	return kp, nil
}
