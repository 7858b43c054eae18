package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HarvestConfig holds settings for the harvest stage.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// Wait is the throttle delay used when the server sends no
	// Retry-After header (default 30s).
	Wait time.Duration `json:"wait" yaml:"wait"`

	// ProgressEvery is the interval between progress lines during a
	// harvest, measured in loop time excluding throttle sleeps
	// (default 90s).
	ProgressEvery time.Duration `json:"progress_every" yaml:"progress_every"`
}

// VocabConfig holds settings for the category vocabulary lookup.
type VocabConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries bounds the throttle retries of the ListSets request
	// (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}
