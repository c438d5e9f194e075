package util

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSecurityDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_util_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	SetSecurityLoggerDB(db)
	t.Cleanup(func() { SetSecurityLoggerDB(nil) })
	return db
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"removes newlines", "hello\nworld", "hello world"},
		{"removes carriage returns", "hello\rworld", "hello world"},
		{"removes tabs", "hello\tworld", "hello world"},
		{"truncates long values", strings.Repeat("a", 250), strings.Repeat("a", 200) + "..."},
		{"handles empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeLogValue(tt.input))
		})
	}
}

func TestLogSecurityEvent_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetLoggerOutputForTest(&buf)
	defer restore()

	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Username:  "emma",
		IP:        "203.0.113.9",
		Message:   "Failed\nlogin",
	})

	out := buf.String()
	assert.Contains(t, out, `"event":"LOGIN_FAILURE"`)
	assert.Contains(t, out, `"username":"emma"`)
	assert.Contains(t, out, `"message":"Failed login"`)
}

func TestLogSecurityEvent_PersistsRow(t *testing.T) {
	db := setupSecurityDB(t)
	restore := SetLoggerOutputForTest(&bytes.Buffer{})
	defer restore()

	LogRegisterSuccess(4, "drwilson", "203.0.113.9", "curl/8", "doctor")

	var entry model.SecurityLog
	require.NoError(t, db.Where("event_type = ?", string(EventRegisterSuccess)).First(&entry).Error)
	assert.Equal(t, "4", entry.UserID)
	assert.Equal(t, "drwilson", entry.Username)
	assert.JSONEq(t, `{"role":"doctor"}`, string(entry.Details))
}

func TestLogClassification_IncludesReport(t *testing.T) {
	db := setupSecurityDB(t)
	restore := SetLoggerOutputForTest(&bytes.Buffer{})
	defer restore()

	LogClassification("127.0.0.1", "3-1-1", 87.5, 9)
	LogClassification("127.0.0.1", "Morula", 60, 0)

	var rows []model.SecurityLog
	require.NoError(t, db.Where("event_type = ?", string(EventClassification)).Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.JSONEq(t, `{"class":"3-1-1","confidence":87.5,"report_id":9}`, string(rows[0].Details))
	assert.JSONEq(t, `{"class":"Morula","confidence":60}`, string(rows[1].Details))
}

func TestLogSecurityEvent_NoDatabase(t *testing.T) {
	SetSecurityLoggerDB(nil)
	restore := SetLoggerOutputForTest(&bytes.Buffer{})
	defer restore()

	assert.NotPanics(t, func() {
		LogRateLimitExceeded("203.0.113.9", "/api/login")
		LogUnauthorizedAccess("203.0.113.9", "/api/reset-passwords", "invalid api token")
		LogLoginSuccess(1, "emma", "203.0.113.9", "curl/8")
		LogLoginFailure("emma", "203.0.113.9", "curl/8", "invalid password")
	})
}
