package voice

import "errors"

var (
	// ErrInsufficientExamples means the user has fewer than MinExamples stored
	// scripts. A single sample carries no statistical voice signal.
	ErrInsufficientExamples = errors.New("at least 2 example scripts are required for voice analysis")

	// ErrExtractionFailed means the extraction call returned something that is
	// not a complete voice pattern document. There is no partial-acceptance
	// path: the prior profile stays untouched.
	ErrExtractionFailed = errors.New("voice pattern extraction failed")

	// ErrNoVoiceProfile means a pattern-mode rewrite was requested for a user
	// without a stored profile.
	ErrNoVoiceProfile = errors.New("no voice profile found, run voice analysis first")
)
