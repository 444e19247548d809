package model

// TokenManager signs and verifies self-contained access tokens.
type TokenManager interface {
	GenerateAccessToken(playerID int64, isAdmin bool) (string, error)
	ParseAccessToken(token string) (Identity, error)
}

// Identity is a verified caller identity extracted from an access token.
type Identity struct {
	PlayerID int64
	IsAdmin  bool
}

// TokenPair is the credential set handed to a client after login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
