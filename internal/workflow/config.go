package workflow

// Config controls the turn orchestration loop and the LLM-backed ports.
type Config struct {
	// Subject is the domain the author writes questions about. Included
	// verbatim in the authoring prompt.
	Subject string

	// MaxTokens is the token budget for each LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAuthorRetries caps consecutive malformed authoring results
	// before the turn is abandoned.
	MaxAuthorRetries int

	// MaxReviewRejections caps reviewer rejections per turn. Hitting the
	// cap force-approves the last draft so a turn always terminates.
	MaxReviewRejections int

	// FeedbackHistoryMin is the answer count below which the feedback
	// analyst is skipped.
	FeedbackHistoryMin int
}

// DefaultConfig returns the recommended orchestration settings.
func DefaultConfig() Config {
	return Config{
		Subject:             "general knowledge",
		MaxTokens:           1024,
		Temperature:         0.7,
		MaxAuthorRetries:    3,
		MaxReviewRejections: 3,
		FeedbackHistoryMin:  3,
	}
}
