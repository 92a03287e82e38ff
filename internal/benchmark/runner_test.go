package benchmark

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/perf"
	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/workflow"
)

// stubAuthor hands out numbered questions with a fixed correct option.
type stubAuthor struct {
	n    int
	errs []error
}

func (a *stubAuthor) Author(context.Context, string) (*workflow.Draft, error) {
	if len(a.errs) > 0 {
		err := a.errs[0]
		a.errs = a.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	a.n++
	return &workflow.Draft{
		Question:     fmt.Sprintf("Question %d?", a.n),
		Options:      []string{"right", "wrong-1", "wrong-2", "wrong-3"},
		CorrectIndex: 0,
	}, nil
}

type approveAll struct{}

func (approveAll) Review(context.Context, workflow.Draft, perf.Snapshot) (workflow.Review, error) {
	return workflow.Review{Approved: true}, nil
}

type noAdvice struct{}

func (noAdvice) Analyze(context.Context, perf.Snapshot) (string, error) { return "", nil }

// knowingStudent answers with the letter of the "right" option, or a wrong
// letter when told to fail.
type knowingStudent struct {
	fail bool
}

func (s *knowingStudent) Answer(_ context.Context, _ string, options []string) (string, error) {
	for i, opt := range options {
		correct := opt == "right"
		if correct != s.fail {
			return string(rune('A' + i)), nil
		}
	}
	return "", nil
}

type fixedScorer struct{ score int }

func (s fixedScorer) Score(context.Context, string, []string) int { return s.score }

type fixedLabeler struct {
	ids []int
	err error
}

func (l fixedLabeler) Label(context.Context, string, []string) ([]int, error) {
	return l.ids, l.err
}

func newRunner(store *perf.Store, author workflow.QuestionAuthor, turns int) *Runner {
	p, _ := persona.FromName("expert")
	return &Runner{
		Orchestrator: workflow.New(author, approveAll{}, noAdvice{}, store, workflow.DefaultConfig(), nil),
		Store:        store,
		Student:      &knowingStudent{},
		Scorer:       fixedScorer{score: 4},
		Labeler:      fixedLabeler{ids: []int{1, 3}},
		Profile:      p,
		Turns:        turns,
	}
}

func TestRun_FullTrace(t *testing.T) {
	store := perf.NewSeededStore(3, 9)
	r := newRunner(store, &stubAuthor{}, 3)

	tr, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Results) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(tr.Results))
	}
	for i, rec := range tr.Results {
		if rec.TurnIndex != i+1 {
			t.Errorf("turn %d: index %d", i, rec.TurnIndex)
		}
		if !rec.IsCorrect {
			t.Errorf("turn %d: knowing student should be correct", i+1)
		}
		if rec.StudentAnswer != rec.CorrectAnswer {
			t.Errorf("turn %d: answer %q vs correct %q", i+1, rec.StudentAnswer, rec.CorrectAnswer)
		}
		if rec.DifficultyScore != 4 {
			t.Errorf("turn %d: difficulty %d", i+1, rec.DifficultyScore)
		}
		if len(rec.SubtopicIDs) != 2 {
			t.Errorf("turn %d: subtopics %v", i+1, rec.SubtopicIDs)
		}
	}
	if tr.Metadata.Turns != 3 || tr.Metadata.PersonaType != "expert" {
		t.Errorf("unexpected metadata %+v", tr.Metadata)
	}
	if snap := store.Snapshot(); snap.Total != 3 || snap.Correct != 3 {
		t.Errorf("store should hold 3 correct answers, got %+v", snap)
	}
}

func TestRun_WrongAnswersGradedIncorrect(t *testing.T) {
	store := perf.NewStore()
	r := newRunner(store, &stubAuthor{}, 2)
	r.Student = &knowingStudent{fail: true}

	tr, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range tr.Results {
		if rec.IsCorrect {
			t.Error("failing student should never be graded correct")
		}
	}
	if snap := store.Snapshot(); snap.Incorrect != 2 {
		t.Errorf("expected 2 incorrect answers, got %+v", snap)
	}
}

func TestRun_TransportErrorPreservesCompletedTurns(t *testing.T) {
	store := perf.NewStore()
	author := &stubAuthor{errs: []error{
		nil,
		&llm.ErrProviderUnavailable{Err: errors.New("down")},
	}}
	r := newRunner(store, author, 5)

	tr, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected run to surface the abort cause")
	}
	if len(tr.Results) != 1 {
		t.Fatalf("expected 1 completed turn preserved, got %d", len(tr.Results))
	}
	if tr.Metadata.Turns != 5 {
		t.Errorf("metadata should record requested turns, got %d", tr.Metadata.Turns)
	}
}

func TestRun_LabelerErrorAbortsTurn(t *testing.T) {
	store := perf.NewStore()
	r := newRunner(store, &stubAuthor{}, 3)
	r.Labeler = fixedLabeler{err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}

	tr, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected labeler failure to abort")
	}
	if len(tr.Results) != 0 {
		t.Errorf("no turns should complete, got %d", len(tr.Results))
	}
}

func TestRun_CancelledContext(t *testing.T) {
	store := perf.NewStore()
	r := newRunner(store, &stubAuthor{}, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(tr.Results) != 0 {
		t.Errorf("expected empty trace, got %d results", len(tr.Results))
	}
}
