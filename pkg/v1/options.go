package v1

import "github.com/ericediger/SECOND-BRAIN/internal"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	vaultPath   string
	threshold   float64
	provider    internal.Provider
	transcriber internal.Transcriber
	history     bool
}

// WithVault sets the vault directory. When unset the client falls back to
// $BRAIN_VAULT, then ~/SecondBrain.
func WithVault(path string) Option {
	return func(c *clientConfig) {
		c.vaultPath = path
	}
}

// WithThreshold overrides the auto-filing confidence threshold.
func WithThreshold(threshold float64) Option {
	return func(c *clientConfig) {
		c.threshold = threshold
	}
}

// WithProvider injects a text-generation provider, replacing the one built
// from config. Useful for tests and custom backends.
func WithProvider(p internal.Provider) Option {
	return func(c *clientConfig) {
		c.provider = p
	}
}

// WithTranscriber injects a speech-to-text backend.
func WithTranscriber(t internal.Transcriber) Option {
	return func(c *clientConfig) {
		c.transcriber = t
	}
}

// WithHistory records vault changes in version history.
func WithHistory() Option {
	return func(c *clientConfig) {
		c.history = true
	}
}
