package building

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TokenProvider supplies the bearer token for each request. An empty token
// sends no Authorization header.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token.
type StaticToken string

// Token returns the token.
func (t StaticToken) Token(context.Context) (string, error) {
	return strings.TrimSpace(string(t)), nil
}

// FileToken reads the token from a file on every call, so a rotated token is
// picked up without a restart.
type FileToken string

// Token returns the trimmed file contents.
func (p FileToken) Token(context.Context) (string, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// EnvToken names an environment variable holding the token.
type EnvToken string

// Token returns the variable's value.
func (e EnvToken) Token(context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// FirstToken tries providers in order and returns the first non-empty token.
type FirstToken []TokenProvider

// Token returns the first non-empty token.
func (f FirstToken) Token(ctx context.Context) (string, error) {
	for _, p := range f {
		if p == nil {
			continue
		}
		tok, err := p.Token(ctx)
		if err != nil {
			return "", err
		}
		if tok != "" {
			return tok, nil
		}
	}
	return "", nil
}
