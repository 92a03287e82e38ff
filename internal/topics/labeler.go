package topics

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

// MaxLabels caps the subtopic tags per question. At most two topics can be
// central to a single multiple choice question.
const MaxLabels = 2

const labelerSystemPrompt = "You are an expert at analyzing educational content and identifying topics."

// Labeler tags questions with the catalog subtopics needed to answer them.
type Labeler struct {
	provider llm.Provider
	catalog  *Catalog
}

// NewLabeler creates a Labeler over the given catalog.
func NewLabeler(provider llm.Provider, catalog *Catalog) *Labeler {
	return &Labeler{provider: provider, catalog: catalog}
}

var digitsRe = regexp.MustCompile(`\d+`)

// Label returns up to MaxLabels subtopic ids, most relevant first. An empty
// result means no catalog topic is central to the question. Unparseable
// content degrades to whatever valid ids it contains; only transport errors
// are returned.
func (l *Labeler) Label(ctx context.Context, question string, options []string) ([]int, error) {
	ctx = llm.WithPurpose(ctx, "topic-label")

	req := llm.Request{
		System: labelerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: l.buildPrompt(question, options)},
		},
		MaxTokens:   256,
		Temperature: 0,
	}

	resp, err := l.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("label call failed: %w", err)
	}
	return l.parseIndices(string(resp.Content)), nil
}

func (l *Labeler) buildPrompt(question string, options []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Given the following list of subtopics (numbered from 0 to %d):\n\n", l.catalog.Size()-1)
	for i, name := range l.catalog.Names {
		fmt.Fprintf(&b, "%d. %s\n", i, name)
	}

	b.WriteString("\nAnalyze this multiple-choice question and identify which subtopics are covered:\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", question)
	for i, opt := range options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}

	b.WriteString(`
Return ONLY a comma-separated list of the subtopic indices (numbers) that are covered in this question.
If no topics are covered, return an empty string. Do NOT try to force elements into the list.
For example: "0,5" or "3" or "7,15" or "".

You must ONLY include the topics that are central to the question.
Here are some guidelines to help you:
1. Identify which syllabus topics are absolutely necessary to answer the question correctly.
2. Apply the necessity test: if a student does not understand topic X, is it impossible to reason out the correct answer? If yes, topic X is primary.
3. EXCLUDE concepts mentioned only in background text or only in incorrect options, and broad parent categories.
4. SORT your list by relevance, most critical topic first.
5. LIMIT your output to the TOP 2 topics only.

Response:`)
	return b.String()
}

// parseIndices extracts in-range ids from the raw response, deduplicates
// preserving the model's relevance order, and truncates to MaxLabels.
func (l *Labeler) parseIndices(raw string) []int {
	matches := digitsRe.FindAllString(raw, -1)
	seen := make(map[int]bool)
	var ids []int
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil || n < 0 || n >= l.catalog.Size() || seen[n] {
			continue
		}
		seen[n] = true
		ids = append(ids, n)
		if len(ids) == MaxLabels {
			break
		}
	}
	return ids
}
