package workflow

import (
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func TestApplyField_CurrentStep(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	if err := ApplyField(session, "currentStep", float64(4)); err != nil {
		t.Fatalf("valid step failed: %v", err)
	}
	if session.CurrentStep != 4 {
		t.Errorf("expected step 4, got %d", session.CurrentStep)
	}

	if err := ApplyField(session, "currentStep", float64(0)); err == nil {
		t.Error("step below range must be rejected")
	}
	if err := ApplyField(session, "currentStep", float64(42)); err == nil {
		t.Error("step above range must be rejected")
	}
	if err := ApplyField(session, "currentStep", "four"); err == nil {
		t.Error("non-numeric step must be rejected")
	}
	if session.CurrentStep != 4 {
		t.Errorf("rejected updates must not mutate the session, got %d", session.CurrentStep)
	}
}

func TestApplyField_IDs(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	for _, field := range []string{"clientId", "serviceAreaId", "journeyCircleId"} {
		if err := ApplyField(session, field, float64(12)); err != nil {
			t.Fatalf("%s failed: %v", field, err)
		}
	}
	if session.ClientID == nil || *session.ClientID != 12 {
		t.Errorf("expected clientId 12, got %v", session.ClientID)
	}
	if session.ServiceAreaID == nil || *session.ServiceAreaID != 12 {
		t.Errorf("expected serviceAreaId 12, got %v", session.ServiceAreaID)
	}
	if session.JourneyCircleID == nil || *session.JourneyCircleID != 12 {
		t.Errorf("expected journeyCircleId 12, got %v", session.JourneyCircleID)
	}
}

func TestApplyField_Collections(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	if err := ApplyField(session, "industries", []interface{}{"construction", "retail"}); err != nil {
		t.Fatalf("industries failed: %v", err)
	}
	if len(session.Industries) != 2 {
		t.Errorf("expected 2 industries, got %v", session.Industries)
	}

	brain := []interface{}{
		map[string]interface{}{"id": "b1", "title": "About us", "content": "We do payroll."},
	}
	if err := ApplyField(session, "brainContent", brain); err != nil {
		t.Fatalf("brainContent failed: %v", err)
	}
	if len(session.BrainContent) != 1 || session.BrainContent[0].ID != "b1" {
		t.Errorf("unexpected brainContent: %+v", session.BrainContent)
	}

	solutions := map[string]interface{}{"7": "The fix"}
	if err := ApplyField(session, "selectedSolutions", solutions); err != nil {
		t.Fatalf("selectedSolutions failed: %v", err)
	}
	if session.SelectedSolutions[7] != "The fix" {
		t.Errorf("unexpected selectedSolutions: %v", session.SelectedSolutions)
	}
}

func TestApplyField_PublishedURLs(t *testing.T) {
	session := model.NewWorkflowSession("s1")

	bad := map[string]interface{}{"1": "ftp://bad.example.com/x"}
	if err := ApplyField(session, "publishedUrls", bad); err == nil {
		t.Error("non-http URL must be rejected")
	}

	good := map[string]interface{}{"1": "https://blog.example.com/post"}
	if err := ApplyField(session, "publishedUrls", good); err != nil {
		t.Fatalf("valid URLs failed: %v", err)
	}
	if session.PublishedURLs[1] != "https://blog.example.com/post" {
		t.Errorf("unexpected publishedUrls: %v", session.PublishedURLs)
	}
}

func TestApplyField_UnknownField(t *testing.T) {
	session := model.NewWorkflowSession("s1")
	if err := ApplyField(session, "nonsense", 1); err == nil {
		t.Error("unknown field must be rejected")
	}
}
