package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/tsuruki/cardforge-server/internal/logger"
)

// ResolveSecret returns the configured signing secret, or generates an
// ephemeral one for the lifetime of the process when none is configured.
// The secret must stay stable while any token signed with it should remain
// verifiable, so this is called exactly once at startup.
func ResolveSecret(configured string, logger *logger.Logger) (string, error) {
	if configured != "" {
		return configured, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate signing secret: %w", err)
	}

	logger.Warn("JWT secret not configured, using an ephemeral secret for this process; " +
		"all access tokens will be invalidated on restart")

	return hex.EncodeToString(buf), nil
}
