package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"trainer-api/internal/model"
	"trainer-api/internal/store"
	"trainer-api/pkg/config"
	"trainer-api/pkg/database"
	"trainer-api/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Metrics are package globals registered once per process
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "test"},
	})
	os.Exit(m.Run())
}

func setupAPI(t *testing.T) (*Handler, *store.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	s := store.New(db)
	return New(s), s, db
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestScanQR_ActivatesOnceAndIsIdempotent(t *testing.T) {
	h, s, db := setupAPI(t)

	product, err := s.CreateProduct("Kettlebell", "ABC123", "weights", "")
	require.NoError(t, err)

	body := `{"tg_id": 42, "qr_code": "ABC123", "first_name": "Alice"}`
	c, rec := newContext(t, http.MethodPost, "/api/scan-qr", body)
	require.NoError(t, h.ScanQR(c))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	assert.Equal(t, "success", payload["status"])
	got := payload["product"].(map[string]any)
	assert.EqualValues(t, product.ID, got["id"])
	assert.Equal(t, "Kettlebell", got["name"])

	// Repeat scan returns the same product without a second activation row
	c, rec = newContext(t, http.MethodPost, "/api/scan-qr", body)
	require.NoError(t, h.ScanQR(c))
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decode(t, rec)
	assert.EqualValues(t, product.ID, payload["product"].(map[string]any)["id"])

	var count int64
	require.NoError(t, db.Model(&model.UserProduct{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestScanQR_UnknownCode(t *testing.T) {
	h, _, db := setupAPI(t)

	c, rec := newContext(t, http.MethodPost, "/api/scan-qr", `{"tg_id": 42, "qr_code": "NOPE"}`)
	require.NoError(t, h.ScanQR(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode(t, rec), "detail")

	var count int64
	require.NoError(t, db.Model(&model.UserProduct{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetUser_LazilyCreatesUser(t *testing.T) {
	h, _, db := setupAPI(t)

	c, rec := newContext(t, http.MethodGet, "/api/user/42", "")
	c.SetPath("/api/user/:tg_id")
	c.SetParamNames("tg_id")
	c.SetParamValues("42")

	require.NoError(t, h.GetUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	user := payload["user"].(map[string]any)
	assert.EqualValues(t, 42, user["tg_id"])
	assert.Empty(t, payload["products"])

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("tg_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetProduct_ForbiddenWithoutActivation(t *testing.T) {
	h, s, _ := setupAPI(t)

	product, err := s.CreateProduct("Kettlebell", "ABC123", "", "")
	require.NoError(t, err)

	c, rec := newContext(t, http.MethodGet, "/api/product/1?tg_id=42", "")
	c.SetPath("/api/product/:product_id")
	c.SetParamNames("product_id")
	c.SetParamValues("1")

	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode(t, rec), "detail")

	// After activation the same request succeeds
	user, err := s.UpsertUser(42, "", "")
	require.NoError(t, err)
	_, _, err = s.ActivateProduct(user.ID, "ABC123")
	require.NoError(t, err)

	c, rec = newContext(t, http.MethodGet, "/api/product/1?tg_id=42", "")
	c.SetPath("/api/product/:product_id")
	c.SetParamNames("product_id")
	c.SetParamValues("1")

	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, product.ID, decode(t, rec)["id"])
}

func TestGetTrainingPrograms_AccessAndOrdering(t *testing.T) {
	h, s, _ := setupAPI(t)

	product, err := s.CreateProduct("Kettlebell", "ABC123", "", "")
	require.NoError(t, err)
	for _, idx := range []int{2, 0, 1} {
		_, err := s.CreateProgram(product.ID, "Program", "", idx)
		require.NoError(t, err)
	}

	c, rec := newContext(t, http.MethodGet, "/api/training-programs/1?tg_id=42", "")
	c.SetPath("/api/training-programs/:product_id")
	c.SetParamNames("product_id")
	c.SetParamValues("1")
	require.NoError(t, h.GetTrainingPrograms(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	user, err := s.UpsertUser(42, "", "")
	require.NoError(t, err)
	_, _, err = s.ActivateProduct(user.ID, "ABC123")
	require.NoError(t, err)

	c, rec = newContext(t, http.MethodGet, "/api/training-programs/1?tg_id=42", "")
	c.SetPath("/api/training-programs/:product_id")
	c.SetParamNames("product_id")
	c.SetParamValues("1")
	require.NoError(t, h.GetTrainingPrograms(c))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	programs := payload["programs"].([]any)
	require.Len(t, programs, 3)
	for i, want := range []float64{0, 1, 2} {
		assert.Equal(t, want, programs[i].(map[string]any)["order_index"])
	}
}

func TestGetTrainingVideos_RequiresProductAccess(t *testing.T) {
	h, s, _ := setupAPI(t)

	product, err := s.CreateProduct("Kettlebell", "ABC123", "", "")
	require.NoError(t, err)
	program, err := s.CreateProgram(product.ID, "Basics", "", 0)
	require.NoError(t, err)
	_, err = s.CreateVideo(program.ID, "Warmup", "https://youtu.be/a", "", 0, nil)
	require.NoError(t, err)

	// Unknown program is a 404, not a silent empty list
	c, rec := newContext(t, http.MethodGet, "/api/training-videos/999?tg_id=42", "")
	c.SetPath("/api/training-videos/:program_id")
	c.SetParamNames("program_id")
	c.SetParamValues("999")
	require.NoError(t, h.GetTrainingVideos(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/api/training-videos/1?tg_id=42", "")
	c.SetPath("/api/training-videos/:program_id")
	c.SetParamNames("program_id")
	c.SetParamValues("1")
	require.NoError(t, h.GetTrainingVideos(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	user, err := s.UpsertUser(42, "", "")
	require.NoError(t, err)
	_, _, err = s.ActivateProduct(user.ID, "ABC123")
	require.NoError(t, err)

	c, rec = newContext(t, http.MethodGet, "/api/training-videos/1?tg_id=42", "")
	c.SetPath("/api/training-videos/:program_id")
	c.SetParamNames("program_id")
	c.SetParamValues("1")
	require.NoError(t, h.GetTrainingVideos(c))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	videos := payload["videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "Warmup", videos[0].(map[string]any)["title"])
}

func TestSupport_CreateAndList(t *testing.T) {
	h, _, _ := setupAPI(t)

	c, rec := newContext(t, http.MethodPost, "/api/support", `{"tg_id": 42, "message": "broken strap"}`)
	require.NoError(t, h.CreateSupportRequest(c))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decode(t, rec)
	assert.Equal(t, "success", payload["status"])
	assert.NotZero(t, payload["request_id"])

	c, rec = newContext(t, http.MethodGet, "/api/support/42", "")
	c.SetPath("/api/support/:tg_id")
	c.SetParamNames("tg_id")
	c.SetParamValues("42")
	require.NoError(t, h.GetSupportRequests(c))
	require.Equal(t, http.StatusOK, rec.Code)

	requests := decode(t, rec)["requests"].([]any)
	require.Len(t, requests, 1)
	got := requests[0].(map[string]any)
	assert.Equal(t, "broken strap", got["message"])
	assert.Equal(t, model.SupportStatusNew, got["status"])
}

func TestSupport_EmptyMessageRejected(t *testing.T) {
	h, _, _ := setupAPI(t)

	c, rec := newContext(t, http.MethodPost, "/api/support", `{"tg_id": 42}`)
	require.NoError(t, h.CreateSupportRequest(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCreateProduct_RejectsDuplicateQRCode(t *testing.T) {
	h, _, _ := setupAPI(t)

	body := `{"name": "Kettlebell", "qr_code": "ABC123"}`
	c, rec := newContext(t, http.MethodPost, "/api/admin/product", body)
	require.NoError(t, h.AdminCreateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, decode(t, rec)["product_id"])

	c, rec = newContext(t, http.MethodPost, "/api/admin/product", `{"name": "Other", "qr_code": "ABC123"}`)
	require.NoError(t, h.AdminCreateProduct(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCreateProgramAndVideo(t *testing.T) {
	h, s, _ := setupAPI(t)

	_, err := s.CreateProduct("Kettlebell", "ABC123", "", "")
	require.NoError(t, err)

	c, rec := newContext(t, http.MethodPost, "/api/admin/training-program",
		`{"product_id": 1, "title": "Basics", "order_index": 0}`)
	require.NoError(t, h.AdminCreateProgram(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, decode(t, rec)["program_id"])

	c, rec = newContext(t, http.MethodPost, "/api/admin/training-video",
		`{"program_id": 1, "title": "Warmup", "youtube_url": "https://youtu.be/a", "duration_seconds": 90}`)
	require.NoError(t, h.AdminCreateVideo(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, decode(t, rec)["video_id"])

	videos, err := s.ListProgramVideos(1)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.NotNil(t, videos[0].DurationSeconds)
	assert.Equal(t, 90, *videos[0].DurationSeconds)
}

func TestAdminUpdateSupportStatus(t *testing.T) {
	h, s, _ := setupAPI(t)

	user, err := s.UpsertUser(42, "", "")
	require.NoError(t, err)
	_, err = s.CreateSupportRequest(user.ID, "help", nil)
	require.NoError(t, err)

	c, rec := newContext(t, http.MethodPatch, "/api/admin/support-request/1/status",
		`{"status": "in_progress"}`)
	c.SetPath("/api/admin/support-request/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.AdminUpdateSupportStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SupportStatusInProgress, decode(t, rec)["new_status"])

	c, rec = newContext(t, http.MethodPatch, "/api/admin/support-request/1/status",
		`{"status": "bogus"}`)
	c.SetPath("/api/admin/support-request/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.AdminUpdateSupportStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(t, http.MethodPatch, "/api/admin/support-request/999/status",
		`{"status": "resolved"}`)
	c.SetPath("/api/admin/support-request/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, h.AdminUpdateSupportStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
