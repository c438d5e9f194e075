package endpoint

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/middleware"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubBackend returns fixed logits, or err when set.
type stubBackend struct {
	logits []float32
	err    error
	calls  int
}

func (b *stubBackend) Infer(_ context.Context, input []float32) ([]float32, error) {
	b.calls++
	if len(input) != 3*classifier.InputSize*classifier.InputSize {
		return nil, fmt.Errorf("unexpected input length %d", len(input))
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.logits, nil
}

// peakLogits returns 19 logits with the maximum at idx.
func peakLogits(idx int) []float32 {
	logits := make([]float32, len(classifier.Labels))
	for i := range logits {
		logits[i] = float32(i%3) * 0.1
	}
	logits[idx] = 10
	return logits
}

type endpointEnv struct {
	db      *gorm.DB
	store   *util.UploadStore
	backend *stubBackend
	router  *gin.Engine
}

// setupEndpointTest creates an in-memory database, an upload directory and a stub classifier,
// and returns a router carrying the same injection middleware the server uses.
func setupEndpointTest(t *testing.T) *endpointEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := util.NewUploadStore(t.TempDir())
	require.NoError(t, err)

	backend := &stubBackend{logits: peakLogits(0)}
	r := gin.New()
	r.Use(
		middleware.DatabaseMiddleware(db),
		middleware.UploadStoreMiddleware(store),
		middleware.ClassifierMiddleware(classifier.New(backend)),
		middleware.IdentifyUser(),
	)
	return &endpointEnv{db: db, store: store, backend: backend, router: r}
}

// createUser inserts a user with an argon2 hash of password.
func createUser(t *testing.T, db *gorm.DB, username, role, password string) model.User {
	t.Helper()
	hashed, err := util.HashPassword(password)
	require.NoError(t, err)
	user := model.User{
		FullName: "User " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: hashed,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createReport(t *testing.T, db *gorm.DB, doctorID, patientID uint, result string) model.Report {
	t.Helper()
	r := model.Report{PatientID: patientID, DoctorID: doctorID, ImagePath: "1700000000_embryo.png"}
	if result != "" {
		r.Result = &result
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

// pngBytes encodes a small solid image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngDataURL(t *testing.T) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
}

// failReportInserts makes every insert into reports fail.
func failReportInserts(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_reports", func(tx *gorm.DB) {
		if tx.Statement.Table == "reports" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
}

// assertNoUploads checks that the upload directory is empty.
func assertNoUploads(t *testing.T, env *endpointEnv) {
	t.Helper()
	entries, err := os.ReadDir(env.store.Dir())
	require.NoError(t, err)
	require.Empty(t, entries)
}
