package e2e

import (
	"net/http"
	"testing"
)

func TestWorkflowGet_CreatesEmptySession(t *testing.T) {
	ta := setupApp(t)

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, "/api/workflow/fresh-session", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	session := parseJSON(t, resp)
	if session["id"] != "fresh-session" {
		t.Errorf("expected id fresh-session, got %v", session["id"])
	}
	if session["currentStep"] != float64(1) {
		t.Errorf("expected currentStep 1, got %v", session["currentStep"])
	}
}

func TestWorkflowUpdate_Field(t *testing.T) {
	ta := setupApp(t)

	body := `{"field": "currentStep", "value": 4}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/workflow/e2e-session", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	session := parseJSON(t, resp)
	if session["currentStep"] != float64(4) {
		t.Errorf("expected currentStep 4, got %v", session["currentStep"])
	}
}

func TestWorkflowUpdate_RejectsBadStep(t *testing.T) {
	ta := setupApp(t)

	body := `{"field": "currentStep", "value": 42}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/workflow/e2e-session", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestWorkflowUpdate_RejectsUnknownField(t *testing.T) {
	ta := setupApp(t)

	body := `{"field": "nonsense", "value": 1}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/workflow/e2e-session", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSelectProblems_CapEnforced(t *testing.T) {
	ta := setupApp(t)

	body := `{"problems": [
		{"id": 1, "title": "a"}, {"id": 2, "title": "b"}, {"id": 3, "title": "c"},
		{"id": 4, "title": "d"}, {"id": 5, "title": "e"}, {"id": 6, "title": "f"}
	]}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/select-problems", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSelectSolution_RequiresSelectedProblem(t *testing.T) {
	ta := setupApp(t)

	body := `{"problemId": 999, "title": "A solution"}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/select-solution", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSelectSolution_Success(t *testing.T) {
	ta := setupApp(t)

	selectBody := `{"problems": [{"id": 7, "title": "Problem seven"}]}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/select-problems", selectBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	readBody(t, resp)

	body := `{"problemId": 7, "title": "The fix"}`
	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/select-solution", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	session := parseJSON(t, resp)
	solutions, ok := session["selectedSolutions"].(map[string]interface{})
	if !ok {
		t.Fatal("expected selectedSolutions map")
	}
	if solutions["7"] != "The fix" {
		t.Errorf("expected solution recorded for problem 7, got %v", solutions)
	}
}

func TestUploadAsset_HTMLContent(t *testing.T) {
	ta := setupApp(t)

	body := `{"name": "About page", "content": "<h1>About us</h1>"}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/assets", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusCreated)

	asset := parseJSON(t, resp)
	if asset["type"] != "html_content" {
		t.Errorf("expected type html_content, got %v", asset["type"])
	}
	assetID, _ := asset["id"].(string)
	if assetID == "" {
		t.Fatal("expected asset id")
	}

	// Delete removes it from the session
	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/workflow/e2e-session/assets/"+assetID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNoContent)

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/workflow/e2e-session/assets/"+assetID, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNotFound)
}

func TestUploadAsset_RejectsEmptyContent(t *testing.T) {
	ta := setupApp(t)

	body := `{"name": "empty", "content": "   "}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/assets", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
}

func TestWorkflowReset(t *testing.T) {
	ta := setupApp(t)

	body := `{"field": "serviceAreaName", "value": "payroll"}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPut, "/api/workflow/reset-session", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	readBody(t, resp)

	resp, err = doAuthRequest(t, ta.app, http.MethodDelete, "/api/workflow/reset-session", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusNoContent)

	resp, err = doAuthRequest(t, ta.app, http.MethodGet, "/api/workflow/reset-session", "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	session := parseJSON(t, resp)
	if session["serviceAreaName"] != "" && session["serviceAreaName"] != nil {
		t.Errorf("expected reset session, got serviceAreaName %v", session["serviceAreaName"])
	}
}
