package workflow

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/journeycircle/api/internal/model"
)

// IsValidURL accepts absolute http/https URLs only
func IsValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// SelectProblems replaces the selected problem set, enforcing the exactly-5
// cap. Selection beyond the cap is rejected, not truncated.
func SelectProblems(session *model.WorkflowSession, problems []model.SelectedProblem) error {
	if len(problems) > model.MaxSelectedProblems {
		return fmt.Errorf("cannot select more than %d problems", model.MaxSelectedProblems)
	}
	seen := make(map[int64]bool, len(problems))
	for _, p := range problems {
		if p.Title == "" {
			return fmt.Errorf("problem %d has an empty title", p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("problem %d selected twice", p.ID)
		}
		seen[p.ID] = true
	}
	session.SelectedProblems = problems
	return nil
}

// SelectSolution records the single chosen solution title for a problem.
// The problem must be among the selected set.
func SelectSolution(session *model.WorkflowSession, problemID int64, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("solution title is required")
	}
	found := false
	for _, p := range session.SelectedProblems {
		if p.ID == problemID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("problem %d is not in the selected set", problemID)
	}
	if session.SelectedSolutions == nil {
		session.SelectedSolutions = map[int64]string{}
	}
	session.SelectedSolutions[problemID] = title
	return nil
}

// SetPublishedURLs stores published URLs for a problem after validating each
func SetPublishedURLs(session *model.WorkflowSession, problemID int64, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}
	for _, u := range urls {
		if !IsValidURL(u) {
			return fmt.Errorf("invalid URL: %s", u)
		}
	}
	if session.PublishedURLs == nil {
		session.PublishedURLs = map[int64]string{}
	}
	// The wizard links one primary URL per problem; extra URLs are kept on
	// the asset row server-side.
	session.PublishedURLs[problemID] = urls[0]
	return nil
}
