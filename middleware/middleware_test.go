package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	util.SetJWTSecret("test-secret")
	restore := util.SetLoggerOutputForTest(&bytes.Buffer{})
	code := m.Run()
	restore()
	os.Exit(code)
}

// newInMemoryDB creates an in-memory sqlite DB with every table migrated.
func newInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_mw_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	return db
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(config.ResetRedisClientForTest)
	return mock
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInjectionMiddlewares(t *testing.T) {
	db := newInMemoryDB(t)
	store, err := util.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	clf := classifier.New(nil)

	r := newRouter(DatabaseMiddleware(db), UploadStoreMiddleware(store), ClassifierMiddleware(clf))
	r.GET("/test", func(c *gin.Context) {
		assert.Same(t, db, GetDB(c))
		assert.Same(t, store, GetUploadStore(c))
		assert.Same(t, clf, GetClassifier(c))
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/test", nil)).Code)
}

func TestGetters_NothingInjected(t *testing.T) {
	r := newRouter()
	r.GET("/test", func(c *gin.Context) {
		assert.Nil(t, GetDB(c))
		assert.Nil(t, GetUploadStore(c))
		assert.Nil(t, GetClassifier(c))
		c.Status(http.StatusOK)
	})
	serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
}

func TestCORSMiddleware_AllowAll(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"*"}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_AllowList(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	restore := util.SetLoggerOutputForTest(&buf)
	defer restore()

	r := newRouter(RequestID(), RequestLogger())
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}
