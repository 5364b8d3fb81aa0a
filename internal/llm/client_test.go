package llm

import (
	"testing"

	"github.com/agent-hub/agent-hub/internal/domain/agent"
)

func TestParseCandidates(t *testing.T) {
	content := `{"agents": [{"id": "abc", "name": "Math Helper"}, {"name": "Poetry Helper"}]}`
	got, err := parseCandidates(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "abc" {
		t.Fatalf("explicit id overwritten: %s", got[0].ID)
	}
	if got[1].ID != agent.Identity("Poetry Helper") {
		t.Fatalf("expected deterministic id for named candidate, got %s", got[1].ID)
	}
}

func TestParseCandidatesEmpty(t *testing.T) {
	got, err := parseCandidates(`{"agents": []}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestParseCandidatesMalformed(t *testing.T) {
	if _, err := parseCandidates("the best agent is Math Helper"); err == nil {
		t.Fatal("expected parse error for non-JSON reply")
	}
}

func TestParseCandidatesFenced(t *testing.T) {
	content := "```json\n{\"agents\": [{\"id\": \"x\", \"name\": \"n\"}]}\n```"
	got, err := parseCandidates(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}
