package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/journeycircle/api/internal/auth"
	"github.com/journeycircle/api/internal/generation"
	"github.com/journeycircle/api/internal/handler"
	"github.com/journeycircle/api/internal/middleware"
	"github.com/journeycircle/api/internal/service"
	"github.com/journeycircle/api/internal/store"
	"github.com/journeycircle/api/internal/workflow"
	ws "github.com/journeycircle/api/internal/websocket"
)

const testJWTSecret = "test-secret-for-e2e"

// testApp holds all components needed for testing
type testApp struct {
	app *fiber.App
}

// setupApp creates a Fiber app identical to main.go but with every external
// backend unconfigured: nil Redis and Asynq, in-memory store, no AI provider.
// This triggers the mock/fallback paths in all services.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	validate := validator.New()

	hub := ws.NewHub()
	go hub.Run()

	db := store.NewMemoryStore()
	sessions := workflow.NewStore(nil, hub)

	controller := generation.NewController(sessions, db, nil, nil, hub)
	journeyService := service.NewJourneyService(db, sessions)
	slideService := service.NewSlideService(nil, nil)
	uploadService := service.NewUploadService(nil)

	aiHandler := handler.NewAIHandler(controller, validate)
	workflowHandler := handler.NewWorkflowHandler(sessions, journeyService, uploadService, validate)
	journeyHandler := handler.NewJourneyHandler(journeyService, controller, validate)
	slidesHandler := handler.NewSlidesHandler(slideService, validate)
	authHandler := handler.NewAuthHandler()

	authMiddleware := middleware.NewLegacyAuthMiddleware(testJWTSecret)
	rateLimiter := middleware.NewRateLimiter(nil) // nil Redis → no limiting

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "journeycircle-api", "time": time.Now().UTC()})
	})
	app.Get("/auth/verify", authMiddleware.Authenticate(), authHandler.Verify)

	api := app.Group("/api", authMiddleware.Authenticate())

	ai := api.Group("/ai")
	ai.Get("/check-status", aiHandler.CheckStatus)
	ai.Post("/generate-problem-titles", rateLimiter.TitlesLimit(10000), aiHandler.GenerateProblemTitles)
	ai.Post("/generate-solution-titles", rateLimiter.TitlesLimit(10000), aiHandler.GenerateSolutionTitles)
	ai.Post("/generate-all-solutions", rateLimiter.TitlesLimit(10000), aiHandler.GenerateAllSolutions)
	ai.Post("/generate-outline", rateLimiter.ContentLimit(10000), aiHandler.GenerateOutline)
	ai.Post("/revise-outline", rateLimiter.ContentLimit(10000), aiHandler.ReviseOutline)
	ai.Post("/generate-content", rateLimiter.ContentLimit(10000), aiHandler.GenerateContent)
	ai.Post("/revise-content", rateLimiter.ContentLimit(10000), aiHandler.ReviseContent)
	ai.Post("/generate-slide-image", rateLimiter.SlidesLimit(10000), aiHandler.GenerateSlideImage)
	ai.Post("/manual-mode", aiHandler.ManualMode)
	ai.Post("/cancel", aiHandler.Cancel)

	wf := api.Group("/workflow")
	wf.Get("/:sessionId", workflowHandler.Get)
	wf.Put("/:sessionId", workflowHandler.Update)
	wf.Delete("/:sessionId", workflowHandler.Reset)
	wf.Post("/:sessionId/select-problems", workflowHandler.SelectProblems)
	wf.Post("/:sessionId/select-solution", workflowHandler.SelectSolution)
	wf.Post("/:sessionId/assets", rateLimiter.UploadLimit(10000), workflowHandler.UploadAsset)
	wf.Delete("/:sessionId/assets/:assetId", workflowHandler.DeleteAsset)

	areas := api.Group("/service-areas")
	areas.Post("/", journeyHandler.CreateServiceArea)
	areas.Get("/", journeyHandler.ListServiceAreas)
	areas.Get("/:id", journeyHandler.GetServiceArea)
	areas.Post("/:id/journey-circle", journeyHandler.EnsureCircle)

	circles := api.Group("/journey-circles")
	circles.Get("/:id/problems", journeyHandler.ListProblems)
	circles.Get("/:id/assets", journeyHandler.ListAssets)
	circles.Get("/:id/assets/:assetId", journeyHandler.GetAsset)
	circles.Post("/:id/assets/:assetId/approve", journeyHandler.ApproveAsset)
	circles.Put("/:id/problems/:problemId/asset-urls", journeyHandler.SetAssetURLs)

	slides := api.Group("/slides")
	slides.Post("/start", rateLimiter.SlidesLimit(10000), slidesHandler.Start)
	slides.Get("/status/:jobId", slidesHandler.Status)
	slides.Get("/result/:jobId", slidesHandler.Result)
	slides.Post("/cancel/:jobId", slidesHandler.Cancel)

	return &testApp{app: app}
}

// generateToken creates a legacy HMAC JWT token for test requests.
func generateToken(t *testing.T) string {
	t.Helper()
	claims := auth.LegacyClaims{
		UserID: "test-user-123",
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "journeycircle-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return signed
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// doAuthRequest performs an authenticated request carrying a session id.
func doAuthRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, error) {
	t.Helper()
	token := generateToken(t)
	return doRequest(app, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
		"X-Session-ID":  "e2e-session",
	})
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
