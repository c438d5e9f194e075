package endpoint

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	FullName string `json:"fullName" example:"Emma Thompson"`
	Email    string `json:"email" example:"emma@example.com"`
	Username string `json:"username" example:"emma"`
	Password string `json:"password" example:"s3cret"`
	Role     string `json:"role" example:"patient" enums:"patient,doctor"`
}

func (r RegisterRequest) missingField() string {
	fields := []struct{ name, value string }{
		{"fullName", r.FullName},
		{"email", r.Email},
		{"username", r.Username},
		{"password", r.Password},
		{"role", r.Role},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" example:"emma"`
	Password string `json:"password" example:"s3cret"`
	Role     string `json:"role" example:"patient"`
}

// LoginUser is the identity echoed back after a successful login.
type LoginUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func ensureAccountAvailable(db *gorm.DB, email, username string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ? OR username = ?", email, username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountExists
	}
	return nil
}

// createAccount inserts user, reporting a lost race on the email or username index as ErrAccountExists.
func createAccount(db *gorm.DB, user *model.User) error {
	err := db.Create(user).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrAccountExists, err)
	}
	return err
}

// Register godoc
// @Summary      Register a new account
// @Description  Create a patient or doctor account. The password is stored as a salted argon2id hash.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account details"
// @Success      201 {object} util.APIResponse "Registration successful"
// @Failure      400 {object} util.APIResponse "Missing field, invalid email or role, or account exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	if field := req.missingField(); field != "" {
		util.CallUserError(c, util.APIErrorParams{Msg: fmt.Sprintf("%s is required", field), Err: fmt.Errorf("missing field %s", field)})
		return
	}
	req.FullName = util.NormalizeName(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if !emailPattern.MatchString(req.Email) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email format", Err: fmt.Errorf("invalid email %q", req.Email)})
		return
	}
	if !model.IsValidRole(req.Role) {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid role", Err: fmt.Errorf("role must be one of %v", model.Roles)})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	if err := ensureAccountAvailable(db, req.Email, req.Username); err != nil {
		if errors.Is(err, ErrAccountExists) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Email or username already in use", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}
	user := model.User{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
		Role:     req.Role,
	}
	if err := createAccount(db, &user); err != nil {
		if errors.Is(err, ErrAccountExists) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Email or username already in use", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create new user", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRegisterSuccess(user.ID, user.Username, ci.IP, ci.Agent, user.Role)
	util.CallCreated(c, util.APISuccessParams{Msg: "Registration successful", Data: gin.H{"user_id": user.ID}})
}

func loadUserForLogin(db *gorm.DB, username, role string) (model.User, error) {
	var user model.User
	err := db.Where("username = ? AND role = ?", username, role).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, err
}

// upgradeLegacyPassword re-hashes a bcrypt password with argon2id after a successful login.
func upgradeLegacyPassword(db *gorm.DB, user *model.User, plain string, ci clientInfo) {
	if !util.IsLegacyHash(user.Password) {
		return
	}
	hashed, err := util.HashPassword(plain)
	if err != nil {
		return
	}
	if err := db.Model(user).Update("password", hashed).Error; err != nil {
		logger := util.Logger()
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to upgrade password hash")
		return
	}
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventPasswordUpgraded,
		UserID:    fmt.Sprintf("%d", user.ID),
		Username:  user.Username,
		IP:        ci.IP,
		Message:   "Upgraded password hash to Argon2",
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate by username, password and role. Returns the user's id, username and role plus a session token.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      400 {object} util.APIResponse "Missing field"
// @Failure      401 {object} util.APIResponse "User not found or invalid password"
// @Failure      429 {object} util.APIResponse "Too many attempts"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "username, password and role are required", Err: fmt.Errorf("missing credentials")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	ci := getClientInfo(c)

	user, err := loadUserForLogin(db, req.Username, req.Role)
	if errors.Is(err, ErrUserNotFound) {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "user not found")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "User not found", Err: err})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	match, err := util.VerifyPassword(req.Password, user.Password)
	if err != nil {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "password verification error")
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "invalid password")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid password", Err: ErrInvalidPassword})
		return
	}

	upgradeLegacyPassword(db, &user, req.Password, ci)

	token, err := util.GenerateSessionToken(user.ID, user.Role, util.SessionTTL)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}
	if err := util.StoreSession(c.Request.Context(), token, user.ID, user.Role, util.SessionTTL); err != nil {
		logger := util.Logger()
		logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to store session")
	}

	util.UsernameCacheSet(user.ID, user.Username)
	util.LogLoginSuccess(user.ID, user.Username, ci.IP, ci.Agent)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: gin.H{
			"user":  LoginUser{ID: user.ID, Username: user.Username, Role: user.Role},
			"token": token,
		},
	})
}

// ResetAllPasswords sets every user's password to plain, each with a fresh salt, and returns the ids touched.
func ResetAllPasswords(db *gorm.DB, plain string) ([]uint, error) {
	var ids []uint
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Order("id").Pluck("id", &ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			hashed, err := util.HashPassword(plain)
			if err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return ids, err
}

// ResetPasswords godoc
// @Summary      Reset every password
// @Description  Operator endpoint: sets every user's password to the configured reset password and drops their sessions.
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Passwords reset"
// @Failure      401 {object} util.APIResponse "Invalid API token"
// @Failure      403 {object} util.APIResponse "Endpoint disabled"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /reset-passwords [post]
func ResetPasswords(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ids, err := ResetAllPasswords(db, config.LoadConfig().ResetPassword)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to reset passwords", Err: err})
		return
	}
	for _, id := range ids {
		_ = util.InvalidateUserSessions(c.Request.Context(), id)
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventPasswordsReset,
		IP:        c.ClientIP(),
		Message:   "All passwords reset",
		Details:   map[string]interface{}{"count": len(ids)},
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Passwords reset", Data: gin.H{"updated": len(ids)}})
}
