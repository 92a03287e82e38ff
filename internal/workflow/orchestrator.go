package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/perf"
)

// RequestKind is what the caller wants from a turn.
type RequestKind int

const (
	// RequestNewQuestion drives the full author/review cycle.
	RequestNewQuestion RequestKind = iota
	// RequestPerformanceQuery resolves immediately without authoring.
	RequestPerformanceQuery
)

// Observer receives human-readable progress events as a turn advances.
// The role is one of "orchestrator", "feedback", "author", "reviewer".
type Observer func(role, message string)

type state int

const (
	stateOrchestrate state = iota
	stateFeedback
	stateAuthor
	stateReview
	statePresent
	stateEnd
)

// Orchestrator runs the bounded state machine that produces one approved,
// registered question per turn. It owns no history itself; all performance
// state lives in the store, which must be fresh per benchmark run.
type Orchestrator struct {
	author   QuestionAuthor
	reviewer DifficultyReviewer
	analyst  FeedbackAnalyst
	store    *perf.Store
	config   Config
	observe  Observer
}

// New creates an Orchestrator. The observer may be nil.
func New(author QuestionAuthor, reviewer DifficultyReviewer, analyst FeedbackAnalyst, store *perf.Store, cfg Config, obs Observer) *Orchestrator {
	return &Orchestrator{
		author:   author,
		reviewer: reviewer,
		analyst:  analyst,
		store:    store,
		config:   cfg,
		observe:  obs,
	}
}

func (o *Orchestrator) emit(role, format string, args ...any) {
	if o.observe != nil {
		o.observe(role, fmt.Sprintf(format, args...))
	}
}

// Turn runs one full cycle. For RequestNewQuestion it returns the question
// registered in the store; for RequestPerformanceQuery it returns nil
// without calling any port. A transport error from any port aborts the
// turn; malformed port output is recovered locally and never escapes.
func (o *Orchestrator) Turn(ctx context.Context, kind RequestKind) (*perf.QuestionRecord, error) {
	if kind != RequestNewQuestion {
		o.emit("orchestrator", "performance query resolved, no question authored")
		return nil, nil
	}

	var (
		st             = stateOrchestrate
		advisory       string
		draft          *Draft
		rejections     int
		authorFailures int
		registered     *perf.QuestionRecord
	)

	for st != stateEnd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch st {
		case stateOrchestrate:
			if o.store.Snapshot().Total >= o.config.FeedbackHistoryMin {
				st = stateFeedback
			} else {
				o.emit("orchestrator", "history too short for feedback, authoring directly")
				st = stateAuthor
			}

		case stateFeedback:
			text, err := o.analyst.Analyze(ctx, o.store.Snapshot())
			if err != nil {
				return nil, fmt.Errorf("feedback step: %w", err)
			}
			advisory = text
			o.emit("feedback", "%s", text)
			st = stateAuthor

		case stateAuthor:
			d, err := o.author.Author(ctx, advisory)
			if err != nil {
				var invalid *llm.ErrInvalidResponse
				if errors.As(err, &invalid) {
					authorFailures++
					o.emit("author", "draft unreadable (attempt %d): %v", authorFailures, invalid.Err)
					if authorFailures >= o.config.MaxAuthorRetries {
						return nil, fmt.Errorf("author step: %d consecutive malformed drafts: %w", authorFailures, err)
					}
					continue
				}
				return nil, fmt.Errorf("author step: %w", err)
			}
			authorFailures = 0
			draft = d
			o.emit("author", "drafted: %s", d.Question)
			st = stateReview

		case stateReview:
			rev, err := o.reviewer.Review(ctx, *draft, o.store.Snapshot())
			if err != nil {
				return nil, fmt.Errorf("review step: %w", err)
			}
			if rev.Approved {
				o.emit("reviewer", "approved")
				st = statePresent
				continue
			}
			rejections++
			o.emit("reviewer", "rejected (%d/%d): %s", rejections, o.config.MaxReviewRejections, rev.Feedback)
			if rejections >= o.config.MaxReviewRejections {
				// Escape valve: a turn must terminate even against a
				// reviewer that never approves.
				o.emit("orchestrator", "accepted after exhausting review budget")
				st = statePresent
				continue
			}
			advisory = rev.Feedback
			st = stateAuthor

		case statePresent:
			registered = o.store.Register(perf.Question{
				Text:         draft.Question,
				Options:      draft.Options,
				CorrectIndex: draft.CorrectIndex,
			})
			o.emit("orchestrator", "question %s registered", registered.ID)
			st = stateEnd
		}
	}

	return registered, nil
}
