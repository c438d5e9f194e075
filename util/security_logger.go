package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ariebrainware/embryo-ai/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventRegisterSuccess    SecurityEventType = "REGISTER_SUCCESS"
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventPasswordUpgraded   SecurityEventType = "PASSWORD_UPGRADED"
	EventPasswordsReset     SecurityEventType = "PASSWORDS_RESET"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
	EventClassification     SecurityEventType = "CLASSIFICATION"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	UserID    string
	Username  string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	securityDB   *gorm.DB
	securityDBMu sync.RWMutex
)

// SetSecurityLoggerDB sets the database audit events are persisted to. nil disables persistence.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityDBMu.Lock()
	defer securityDBMu.Unlock()
	securityDB = db
}

func getSecurityDB() *gorm.DB {
	securityDBMu.RLock()
	defer securityDBMu.RUnlock()
	return securityDB
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent writes the event to the process logger and persists it best-effort.
func LogSecurityEvent(event SecurityEvent) {
	l := Logger()
	l.Info().
		Str("channel", "security").
		Str("event", sanitizeLogValue(string(event.EventType))).
		Str("user_id", sanitizeLogValue(event.UserID)).
		Str("username", sanitizeLogValue(event.Username)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Int("details_count", len(event.Details)).
		Msg(sanitizeLogValue(event.Message))

	db := getSecurityDB()
	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		UserID:    sanitizeLogValue(event.UserID),
		Username:  sanitizeLogValue(event.Username),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(GetIPLocation(event.IP).String()),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		l.Warn().Err(err).Msg("failed to persist security event")
	}
}

// LogRegisterSuccess logs a new account
func LogRegisterSuccess(userID uint, username, ip, userAgent, role string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRegisterSuccess,
		UserID:    fmt.Sprintf("%d", userID),
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User registered",
		Details:   map[string]interface{}{"role": role},
	})
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(userID uint, username, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    fmt.Sprintf("%d", userID),
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(username, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogClassification records one classifier run.
func LogClassification(ip, label string, confidence float64, reportID uint) {
	details := map[string]interface{}{"class": label, "confidence": confidence}
	if reportID != 0 {
		details["report_id"] = reportID
	}
	LogSecurityEvent(SecurityEvent{
		EventType: EventClassification,
		IP:        ip,
		Message:   fmt.Sprintf("Embryo classified as %s", label),
		Details:   details,
	})
}
