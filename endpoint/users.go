package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientSummary is one entry of the patient directory.
type PatientSummary struct {
	ID       uint   `json:"id" example:"2"`
	Name     string `json:"name" example:"Emma Thompson"`
	Email    string `json:"email" example:"emma@example.com"`
	Username string `json:"username" example:"emma"`
	Age      *int   `json:"age" example:"34"`
}

// UserProfile is the clinical profile of a patient.
type UserProfile struct {
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	BloodType        *string `json:"blood_type"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	Allergies        *string `json:"allergies"`
	MedicalHistory   *string `json:"medical_history"`
	Age              *int    `json:"age"`
}

func profileOf(u model.User) UserProfile {
	return UserProfile{
		FullName:         u.FullName,
		Email:            u.Email,
		Phone:            u.Phone,
		Address:          u.Address,
		BloodType:        u.BloodType,
		EmergencyContact: u.EmergencyContact,
		EmergencyPhone:   u.EmergencyPhone,
		Allergies:        u.Allergies,
		MedicalHistory:   u.MedicalHistory,
		Age:              u.Age,
	}
}

// UpdateProfileRequest carries the profile fields a patient may change. Absent fields are left untouched.
type UpdateProfileRequest struct {
	Age              *int    `json:"age" example:"34"`
	Phone            *string `json:"phone" example:"+90 555 000 00 00"`
	Address          *string `json:"address"`
	BloodType        *string `json:"blood_type" example:"A+"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	Allergies        *string `json:"allergies"`
	MedicalHistory   *string `json:"medical_history"`
}

// updates returns the column map for the supplied fields.
func (r UpdateProfileRequest) updates() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Age != nil {
		fields["age"] = *r.Age
	}
	strs := []struct {
		col string
		val *string
	}{
		{"phone", r.Phone},
		{"address", r.Address},
		{"blood_type", r.BloodType},
		{"emergency_contact", r.EmergencyContact},
		{"emergency_phone", r.EmergencyPhone},
		{"allergies", r.Allergies},
		{"medical_history", r.MedicalHistory},
	}
	for _, s := range strs {
		if s.val != nil {
			fields[s.col] = *s.val
		}
	}
	return fields
}

func findUserByUsername(db *gorm.DB, username, role string) (*model.User, error) {
	var user model.User
	q := db.Where("username = ?", username)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func findUserByUsernameOrRespond(c *gin.Context, db *gorm.DB, username, role string) (*model.User, bool) {
	user, err := findUserByUsername(db, username, role)
	if errors.Is(err, ErrUserNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
		return nil, false
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve user", Err: err})
		return nil, false
	}
	return user, true
}

// ListPatients godoc
// @Summary      List patients
// @Description  Every user with the patient role
// @Tags         Users
// @Produce      json
// @Success      200 {object} util.APIResponse "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var users []model.User
	if err := db.Where("role = ?", model.RolePatient).Order("id ASC").Find(&users).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}

	patients := make([]PatientSummary, 0, len(users))
	for _, u := range users {
		patients = append(patients, PatientSummary{ID: u.ID, Name: u.FullName, Email: u.Email, Username: u.Username, Age: u.Age})
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"patients": patients}})
}

// GetUserProfile godoc
// @Summary      Get patient profile
// @Description  Clinical profile of the patient with the given username
// @Tags         Users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} util.APIResponse "Profile"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /user/{username} [get]
func GetUserProfile(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := findUserByUsernameOrRespond(c, db, c.Param("username"), model.RolePatient)
	if !ok {
		return
	}

	p := profileOf(*user)
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{
		"full_name":         p.FullName,
		"email":             p.Email,
		"phone":             p.Phone,
		"address":           p.Address,
		"blood_type":        p.BloodType,
		"emergency_contact": p.EmergencyContact,
		"emergency_phone":   p.EmergencyPhone,
		"allergies":         p.Allergies,
		"medical_history":   p.MedicalHistory,
		"age":               p.Age,
	}})
}

// UpdateUserProfile godoc
// @Summary      Update patient profile
// @Description  Partial update of a patient's clinical fields
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        username path string true "Username"
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      400 {object} util.APIResponse "No fields to update"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /user/{username} [put]
func UpdateUserProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	fields := req.updates()
	if len(fields) == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "No fields to update", Err: ErrNoFieldsToUpdate})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	user, ok := findUserByUsernameOrRespond(c, db, c.Param("username"), model.RolePatient)
	if !ok {
		return
	}
	if err := db.Model(user).Updates(fields).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile updated"})
}

// GetDoctor godoc
// @Summary      Get doctor name
// @Description  Full name of the doctor identified by the X-User-Username header
// @Tags         Users
// @Produce      json
// @Param        X-User-Username header string true "Doctor username"
// @Success      200 {object} util.APIResponse "Doctor"
// @Failure      400 {object} util.APIResponse "Header missing"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor [get]
func GetDoctor(c *gin.Context) {
	username := strings.TrimSpace(c.GetHeader("X-User-Username"))
	if username == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "X-User-Username header is required", Err: fmt.Errorf("missing username header")})
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	doctor, ok := findUserByUsernameOrRespond(c, db, username, model.RoleDoctor)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"full_name": doctor.FullName}})
}
