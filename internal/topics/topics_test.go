package topics

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subtopics.json")
	if err := os.WriteFile(path, []byte(`["Sockets", "RPC", "Consensus"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 3 {
		t.Errorf("expected 3 subtopics, got %d", c.Size())
	}
	if c.Name(1) != "RPC" {
		t.Errorf("expected RPC at index 1, got %q", c.Name(1))
	}
	if c.Name(5) != "" {
		t.Errorf("out of range name should be empty, got %q", c.Name(5))
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`[]`), 0o644)
	if _, err := Load(empty); err == nil {
		t.Error("expected error for empty catalog")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"not": "a list"}`), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for non-array catalog")
	}
}

func labelResponse(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestLabel_ParsesIndices(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []int
	}{
		{"pair", `3,7`, []int{3, 7}},
		{"single", `5`, []int{5}},
		{"relevance order kept", `7, 2`, []int{7, 2}},
		{"dedup", `4, 4, 1`, []int{4, 1}},
		{"truncate to two", `1, 2, 3`, []int{1, 2}},
		{"out of range filtered", `42, 3`, []int{3}},
		{"empty", ``, nil},
		{"prose around numbers", `The topics are 0 and 8.`, []int{0, 8}},
		{"pure prose", `none of these apply`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(labelResponse(tc.raw))
			labeler := NewLabeler(mock, Default())

			ids, err := labeler.Label(context.Background(), "Q?", []string{"a", "b", "c", "d"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Errorf("want %v, got %v", tc.want, ids)
			}
		})
	}
}

func TestLabel_CatalogInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(labelResponse(`0`))
	labeler := NewLabeler(mock, Default())

	_, err := labeler.Label(context.Background(), "How does a broker decouple producers?", []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userMsg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"0. Client-server architecture", "How does a broker decouple producers?", "TOP 2"} {
		if !strings.Contains(userMsg, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestLabel_TransportError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	labeler := NewLabeler(mock, Default())

	_, err := labeler.Label(context.Background(), "Q?", []string{"a", "b", "c", "d"})
	if err == nil {
		t.Fatal("expected transport error")
	}
}
