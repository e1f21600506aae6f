package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/api"
	"github.com/mutaaf/ramadan-guide-sub002/internal/auth"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/mocks"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

const adminSecret = "test-admin-secret"

type routerMocks struct {
	generation *mocks.MockGenerationService
	regenerate *mocks.MockRegenerateService
	publish    *mocks.MockPublishService
	catalog    *mocks.MockCatalogService
}

func setupTestRouter(secret string) (*gin.Engine, *routerMocks) {
	gin.SetMode(gin.TestMode)

	m := &routerMocks{
		generation: mocks.NewMockGenerationService(),
		regenerate: mocks.NewMockRegenerateService(),
		publish:    mocks.NewMockPublishService(),
		catalog:    mocks.NewMockCatalogService(),
	}

	services := &service.Services{
		Generation: m.generation,
		Regenerate: m.regenerate,
		Publish:    m.publish,
		Catalog:    m.catalog,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
	}

	router := api.NewRouter(services, auth.NewTokenVerifier(secret), cfg, zerolog.Nop())
	return router, m
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(adminSecret)

	w := doJSON(router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestVerifyToken(t *testing.T) {
	router, _ := setupTestRouter(adminSecret)

	w := doJSON(router, "POST", "/v1/auth/verify-token", "", map[string]string{"token": adminSecret})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for correct token, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/v1/auth/verify-token", "", map[string]string{"token": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong token, got %d", w.Code)
	}
}

func TestVerifyTokenMissingSecret(t *testing.T) {
	// No configured secret: the caller's token cannot be at fault, so this
	// must be a 500, not a 401
	router, _ := setupTestRouter("")

	w := doJSON(router, "POST", "/v1/auth/verify-token", "", map[string]string{"token": "anything"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for missing secret, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	w := doJSON(router, "POST", "/v1/publish", "", map[string]interface{}{})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
	if m.publish.Calls != 0 {
		t.Error("Publish must not run without a valid token")
	}

	w = doJSON(router, "POST", "/v1/publish", "wrong-token", map[string]interface{}{})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong token, got %d", w.Code)
	}
}

func TestPublishEndpoint(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.publish.PublishFunc = func(ctx context.Context, index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) (*service.PublishResult, error) {
		return &service.PublishResult{
			Files: []service.PublishedFile{{Path: "series-index.json", URL: "https://blob.example.com/series-index.json"}},
		}, nil
	}

	body := map[string]interface{}{
		"index":      map[string]interface{}{"series": []interface{}{}, "scholars": []interface{}{}},
		"seriesData": map[string]interface{}{"series-1": map[string]interface{}{}},
	}
	w := doJSON(router, "POST", "/v1/publish", adminSecret, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result service.PublishResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if len(result.Files) != 1 || result.Files[0].Path != "series-index.json" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestRegenerateSectionEndpoint(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.regenerate.RegenerateFunc = func(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
		return models.SectionSummary, "the new summary", nil
	}

	body := validation.RegenerateRequest{
		Section:      "summary",
		Transcript:   "t",
		ScholarName:  "s",
		SeriesTitle:  "f",
		EpisodeTitle: "e",
		ExistingCompanion: &models.Companion{
			Summary:   "old summary",
			NextSteps: []string{"keep me"},
		},
	}
	w := doJSON(router, "POST", "/v1/companions/regenerate-section", adminSecret, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Section   models.Section    `json:"section"`
		Companion *models.Companion `json:"companion"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Section != models.SectionSummary {
		t.Errorf("Unexpected section: %s", response.Section)
	}
	if response.Companion.Summary != "the new summary" {
		t.Errorf("Expected regenerated summary, got %q", response.Companion.Summary)
	}
	if len(response.Companion.NextSteps) != 1 || response.Companion.NextSteps[0] != "keep me" {
		t.Errorf("Other sections must be untouched, got %+v", response.Companion.NextSteps)
	}
}

func TestRegenerateSectionValidationError(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.regenerate.RegenerateFunc = func(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
		return "", nil, validation.ValidationError{Field: "section", Message: "invalid section"}
	}

	body := validation.RegenerateRequest{Section: "bogus", ExistingCompanion: &models.Companion{}}
	w := doJSON(router, "POST", "/v1/companions/regenerate-section", adminSecret, body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestUpstreamErrorPassesProviderStatus(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.regenerate.RegenerateFunc = func(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
		return "", nil, &ai.UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "rate limited"}
	}

	body := validation.RegenerateRequest{Section: "summary", ExistingCompanion: &models.Companion{}}
	w := doJSON(router, "POST", "/v1/companions/regenerate-section", adminSecret, body)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected provider status 429, got %d", w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "rate limited" {
		t.Errorf("Expected provider message, got %q", response["error"])
	}
}

func TestMissingProviderCredentialIs500(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.regenerate.RegenerateFunc = func(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
		return "", nil, ai.ErrMissingAPIKey
	}

	body := validation.RegenerateRequest{Section: "summary", ExistingCompanion: &models.Companion{}}
	w := doJSON(router, "POST", "/v1/companions/regenerate-section", adminSecret, body)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for missing credential, got %d", w.Code)
	}
}

func TestGenerationStatusNotFound(t *testing.T) {
	router, _ := setupTestRouter(adminSecret)

	w := doJSON(router, "GET", "/v1/episodes/ep-1/generation", adminSecret, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 with no run, got %d", w.Code)
	}
}

func TestGenerationStatus(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.generation.GetStatusFunc = func(ctx context.Context, episodeID string) (*models.GenerationRun, error) {
		return &models.GenerationRun{EpisodeID: episodeID, State: models.GenerationStateAnalyzing, Progress: 70}, nil
	}

	w := doJSON(router, "GET", "/v1/episodes/ep-1/generation", adminSecret, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var run models.GenerationRun
	json.Unmarshal(w.Body.Bytes(), &run)
	if run.State != models.GenerationStateAnalyzing || run.Progress != 70 {
		t.Errorf("Unexpected run: %+v", run)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	router, m := setupTestRouter(adminSecret)

	m.generation.GenerateFunc = func(ctx context.Context, episodeID string) (*models.Companion, error) {
		return &models.Companion{Summary: "generated"}, nil
	}

	w := doJSON(router, "POST", "/v1/episodes/ep-1/generate", adminSecret, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(m.generation.GenerateCalls) != 1 || m.generation.GenerateCalls[0] != "ep-1" {
		t.Errorf("Unexpected generate calls: %v", m.generation.GenerateCalls)
	}
}

func TestCreateScholarValidation(t *testing.T) {
	router, _ := setupTestRouter(adminSecret)

	w := doJSON(router, "POST", "/v1/scholars", adminSecret, map[string]string{"title": "Dr."})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing name, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/v1/scholars", adminSecret, map[string]string{"name": "Sheikh Example"})
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", w.Code)
	}
}
