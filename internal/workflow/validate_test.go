package workflow

import (
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func TestSelectProblems_Cap(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	five := []model.SelectedProblem{
		{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"},
		{ID: 4, Title: "d"}, {ID: 5, Title: "e"},
	}
	if err := SelectProblems(session, five); err != nil {
		t.Fatalf("five problems must be accepted: %v", err)
	}

	six := append(five, model.SelectedProblem{ID: 6, Title: "f"})
	if err := SelectProblems(session, six); err == nil {
		t.Fatal("six problems must be rejected, not truncated")
	}
	if len(session.SelectedProblems) != 5 {
		t.Errorf("rejected selection must not mutate the session, got %d", len(session.SelectedProblems))
	}
}

func TestSelectProblems_RejectsDuplicatesAndEmptyTitles(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	dupes := []model.SelectedProblem{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}
	if err := SelectProblems(session, dupes); err == nil {
		t.Error("duplicate ids must be rejected")
	}

	empty := []model.SelectedProblem{{ID: 1, Title: ""}}
	if err := SelectProblems(session, empty); err == nil {
		t.Error("empty titles must be rejected")
	}
}

func TestSelectSolution_RequiresMembership(t *testing.T) {
	session := model.NewWorkflowSession("s1")
	session.SelectedProblems = []model.SelectedProblem{{ID: 7, Title: "p"}}

	if err := SelectSolution(session, 8, "fix"); err == nil {
		t.Error("unselected problem must be rejected")
	}
	if err := SelectSolution(session, 7, "  "); err == nil {
		t.Error("blank title must be rejected")
	}
	if err := SelectSolution(session, 7, "fix"); err != nil {
		t.Fatalf("valid selection failed: %v", err)
	}
	if session.SelectedSolutions[7] != "fix" {
		t.Errorf("expected solution recorded, got %v", session.SelectedSolutions)
	}

	// Re-selecting replaces the previous choice
	if err := SelectSolution(session, 7, "better fix"); err != nil {
		t.Fatalf("re-selection failed: %v", err)
	}
	if session.SelectedSolutions[7] != "better fix" {
		t.Errorf("expected replacement, got %v", session.SelectedSolutions)
	}
}

func TestIsValidURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://blog.example.com/post", true},
		{"http://example.com", true},
		{" https://example.com ", true},
		{"ftp://example.com/file", false},
		{"javascript:alert(1)", false},
		{"example.com/no-scheme", false},
		{"https://", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidURL(tc.url); got != tc.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestSetPublishedURLs(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	if err := SetPublishedURLs(session, 1, nil); err == nil {
		t.Error("an empty URL set must be rejected")
	}
	if err := SetPublishedURLs(session, 1, []string{"ftp://bad.example.com"}); err == nil {
		t.Error("invalid scheme must be rejected")
	}
	if err := SetPublishedURLs(session, 1, []string{"https://a.example.com", "https://b.example.com"}); err != nil {
		t.Fatalf("valid URLs failed: %v", err)
	}
	if session.PublishedURLs[1] != "https://a.example.com" {
		t.Errorf("expected the first URL as primary, got %v", session.PublishedURLs)
	}
}
