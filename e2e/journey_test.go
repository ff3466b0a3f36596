package e2e

import (
	"fmt"
	"net/http"
	"testing"
)

func createServiceArea(t *testing.T, ta *testApp) (areaID, circleID int64) {
	t.Helper()

	body := `{"clientId": 1, "name": "payroll compliance"}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/service-areas", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusCreated)

	result := parseJSON(t, resp)
	area, ok := result["serviceArea"].(map[string]interface{})
	if !ok {
		t.Fatal("expected serviceArea in response")
	}
	circle, ok := result["journeyCircle"].(map[string]interface{})
	if !ok {
		t.Fatal("expected journeyCircle in response")
	}
	return int64(area["id"].(float64)), int64(circle["id"].(float64))
}

func TestCreateServiceArea_WithCircle(t *testing.T) {
	ta := setupApp(t)

	areaID, circleID := createServiceArea(t, ta)
	if areaID == 0 || circleID == 0 {
		t.Fatalf("expected non-zero ids, got area %d circle %d", areaID, circleID)
	}
}

func TestEnsureCircle_Idempotent(t *testing.T) {
	ta := setupApp(t)
	areaID, circleID := createServiceArea(t, ta)

	// The circle already exists, so ensure returns it with 200
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, fmt.Sprintf("/api/service-areas/%d/journey-circle", areaID), "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	circle := parseJSON(t, resp)
	if int64(circle["id"].(float64)) != circleID {
		t.Errorf("expected existing circle %d, got %v", circleID, circle["id"])
	}
}

func generateOutline(t *testing.T, ta *testApp, circleID int64) (assetID int64, outline string) {
	t.Helper()

	body := fmt.Sprintf(`{
		"journey_circle_id": %d,
		"linked_to_type": "problem",
		"linked_to_id": 1,
		"asset_type": "blog_post",
		"service_area_name": "payroll compliance",
		"problem_title": "Payroll errors keep recurring"
	}`, circleID)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/ai/generate-outline", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["success"] != true {
		t.Fatalf("expected success=true, got %v", result)
	}
	return int64(result["asset_id"].(float64)), result["outline"].(string)
}

func TestOutlineCreatesAssetRow(t *testing.T) {
	ta := setupApp(t)
	_, circleID := createServiceArea(t, ta)

	assetID, outline := generateOutline(t, ta, circleID)
	if assetID == 0 {
		t.Fatal("expected asset row to be created")
	}
	if outline == "" {
		t.Fatal("expected a mock outline")
	}

	resp, err := doAuthRequest(t, ta.app, http.MethodGet, fmt.Sprintf("/api/journey-circles/%d/assets/%d", circleID, assetID), "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	asset := parseJSON(t, resp)
	if asset["status"] != "outline" {
		t.Errorf("expected status outline, got %v", asset["status"])
	}
}

func TestContentAndApprove_OneWay(t *testing.T) {
	ta := setupApp(t)
	_, circleID := createServiceArea(t, ta)
	assetID, outline := generateOutline(t, ta, circleID)

	body := fmt.Sprintf(`{"asset_id": %d, "outline": %q}`, assetID, outline)
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/ai/generate-content", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["success"] != true {
		t.Fatalf("expected success=true, got %v", result)
	}

	approvePath := fmt.Sprintf("/api/journey-circles/%d/assets/%d/approve", circleID, assetID)
	resp, err = doAuthRequest(t, ta.app, http.MethodPost, approvePath, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	approval := parseJSON(t, resp)
	if approval["status"] != "approved" {
		t.Errorf("expected status approved, got %v", approval["status"])
	}
	if approval["downloadReady"] != true {
		t.Errorf("expected downloadReady=true, got %v", approval["downloadReady"])
	}

	// Approving again is a conflict: status only moves forward
	resp, err = doAuthRequest(t, ta.app, http.MethodPost, approvePath, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusConflict)
}

func TestReviseAfterApprove_Rejected(t *testing.T) {
	ta := setupApp(t)
	_, circleID := createServiceArea(t, ta)
	assetID, outline := generateOutline(t, ta, circleID)

	contentBody := fmt.Sprintf(`{"asset_id": %d, "outline": %q}`, assetID, outline)
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/ai/generate-content", contentBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	readBody(t, resp)

	approvePath := fmt.Sprintf("/api/journey-circles/%d/assets/%d/approve", circleID, assetID)
	resp, err = doAuthRequest(t, ta.app, http.MethodPost, approvePath, "")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	readBody(t, resp)

	revise := fmt.Sprintf(`{"asset_id": %d, "current_outline": %q, "feedback": "shorter"}`, assetID, outline)
	resp, err = doAuthRequest(t, ta.app, http.MethodPost, "/api/ai/revise-outline", revise)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusConflict)
}

func TestReviseOutline_RequiresFeedback(t *testing.T) {
	ta := setupApp(t)
	_, circleID := createServiceArea(t, ta)
	assetID, outline := generateOutline(t, ta, circleID)

	revise := fmt.Sprintf(`{"asset_id": %d, "current_outline": %q, "feedback": "  "}`, assetID, outline)
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/ai/revise-outline", revise)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)
}

func TestSetAssetURLs_ValidatesURLs(t *testing.T) {
	ta := setupApp(t)
	_, circleID := createServiceArea(t, ta)

	// The problem must be in the selected set first
	selectBody := `{"problems": [{"id": 1, "title": "Problem one"}]}`
	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/api/workflow/e2e-session/select-problems", selectBody)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)
	readBody(t, resp)

	path := fmt.Sprintf("/api/journey-circles/%d/problems/1/asset-urls", circleID)

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, path, `{"asset_urls": ["ftp://bad.example.com/x"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusBadRequest)

	resp, err = doAuthRequest(t, ta.app, http.MethodPut, path, `{"asset_urls": ["https://blog.example.com/post"]}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusOK)

	result := parseJSON(t, resp)
	if result["success"] != true {
		t.Errorf("expected success=true, got %v", result)
	}
}
