package endpoint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ariebrainware/embryo-ai/middleware"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientInfo struct {
	IP    string
	Agent string
}

func getClientInfo(c *gin.Context) clientInfo {
	return clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
}

// flexID accepts an id sent either as a JSON number or as a numeric string.
type flexID uint

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*f = flexID(n)
	return nil
}

func (f *flexID) value() (uint, bool) {
	if f == nil || *f == 0 {
		return 0, false
	}
	return uint(*f), true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func bindJSONOrRespond(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid request body", Err: err})
		return false
	}
	return true
}

func parseIDOrRespond(c *gin.Context, raw, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: fmt.Sprintf("Invalid %s", name), Err: fmt.Errorf("invalid %s %q", name, raw)})
		return 0, false
	}
	return uint(id), true
}

// requireRole returns ErrUserNotFound unless id references a user with role.
func requireRole(db *gorm.DB, id uint, role string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("id = ? AND role = ?", id, role).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// validateParties checks that doctorID is a doctor and patientID a patient.
func validateParties(db *gorm.DB, doctorID, patientID uint) error {
	if err := requireRole(db, doctorID, model.RoleDoctor); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidDoctor
		}
		return err
	}
	if err := requireRole(db, patientID, model.RolePatient); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidPatient
		}
		return err
	}
	return nil
}

func validatePartiesOrRespond(c *gin.Context, db *gorm.DB, doctorID, patientID uint) bool {
	err := validateParties(db, doctorID, patientID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrInvalidDoctor):
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid doctor ID", Err: err})
	case errors.Is(err, ErrInvalidPatient):
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid patient ID", Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
	}
	return false
}

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// isUniqueViolation reports whether err is a unique index violation, translated by gorm or raw from
// the sqlite, mysql or postgres driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// removeStored drops an image whose report row could not be written.
func removeStored(store *util.UploadStore, name string) {
	if err := store.Remove(name); err != nil {
		logger := util.Logger()
		logger.Warn().Err(err).Str("file", name).Msg("failed to remove orphaned upload")
	}
}
