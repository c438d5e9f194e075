package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("APITOKEN", "")
	util.SetJWTSecret("routes-secret")
	restore := util.SetLoggerOutputForTest(&bytes.Buffer{})
	gin.SetMode(gin.TestMode)
	code := m.Run()
	restore()
	os.Exit(code)
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	config.ResetForTest()
	t.Cleanup(config.ResetForTest)

	dsn := fmt.Sprintf("file:testdb_routes_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.Migrate(db))

	store, err := util.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	return SetupRouter(config.LoadConfig(), db, store, nil), db
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRootAndHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to Embryo AI!", resp["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, resp = do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := do(r, http.MethodPost, "/api/register",
		`{"fullName":"Dr Who","email":"who@example.com","username":"drwho","password":"tardis","role":"doctor"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := do(r, http.MethodPost, "/api/login", `{"username":"drwho","password":"tardis","role":"doctor"}`)
	require.Equal(t, http.StatusOK, w.Code)
	token := resp["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/token/validate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetPasswordsDisabledWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(r, http.MethodPost, "/api/reset-passwords", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnalyzeWithoutClassifier(t *testing.T) {
	r, _ := newTestRouter(t)
	w, resp := do(r, http.MethodPost, "/api/analyze-embryo", `{"image":"aGVsbG8="}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestBothAppointmentUpdateFormsAreRouted(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(r, http.MethodPut, "/api/appointments", `{"id":42,"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(r, http.MethodPut, "/api/appointments/42", `{"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerIsServed(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(r, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/analyze-embryo")
}
