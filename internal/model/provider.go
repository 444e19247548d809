package model

import "context"

// IdentityProvider is the narrow contract this engine needs from the OAuth2
// provider: build an authorization URL and turn a callback code into identity
// claims. Failures are terminal for the current login; no retries here.
type IdentityProvider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (ProviderIdentity, error)
}

// ProviderIdentity holds the claims resolved from the provider.
type ProviderIdentity struct {
	ID       int64
	Username string
}
