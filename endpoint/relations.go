package endpoint

import (
	"fmt"

	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SelectPatientRequest links a doctor to a patient.
type SelectPatientRequest struct {
	DoctorID  *flexID `json:"doctor_id" swaggertype:"integer" example:"1"`
	PatientID *flexID `json:"patient_id" swaggertype:"integer" example:"2"`
}

// DoctorPatient is a patient row annotated with whether the doctor has selected them.
type DoctorPatient struct {
	ID         uint   `gorm:"column:id" json:"id"`
	FullName   string `gorm:"column:full_name" json:"full_name"`
	Email      string `gorm:"column:email" json:"email"`
	Username   string `gorm:"column:username" json:"username"`
	Age        *int   `gorm:"column:age" json:"age"`
	IsSelected bool   `gorm:"column:is_selected" json:"is_selected"`
}

func relationExists(db *gorm.DB, doctorID, patientID uint) (bool, error) {
	var count int64
	err := db.Model(&model.DoctorPatientRelation{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	return count > 0, err
}

// selectPatient inserts the pair unless it exists. created is false when the pair was already there.
func selectPatient(db *gorm.DB, doctorID, patientID uint) (created bool, err error) {
	exists, err := relationExists(db, doctorID, patientID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	rel := model.DoctorPatientRelation{DoctorID: doctorID, PatientID: patientID}
	if err := db.Create(&rel).Error; err != nil {
		// A concurrent insert of the same pair trips the unique index.
		if exists, recheckErr := relationExists(db, doctorID, patientID); recheckErr == nil && exists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func listDoctorPatients(db *gorm.DB, doctorID uint) ([]DoctorPatient, error) {
	patients := []DoctorPatient{}
	err := db.Table("users AS u").
		Select("u.id, u.full_name, u.email, u.username, u.age, "+
			"CASE WHEN r.id IS NULL THEN 0 ELSE 1 END AS is_selected").
		Joins("LEFT JOIN doctor_patient_relations AS r ON r.patient_id = u.id AND r.doctor_id = ?", doctorID).
		Where("u.role = ?", model.RolePatient).
		Order("u.id ASC").
		Scan(&patients).Error
	return patients, err
}

// SelectPatient godoc
// @Summary      Select a patient
// @Description  Add a patient to a doctor's caseload. Selecting the same pair twice is a no-op.
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body SelectPatientRequest true "Doctor and patient ids"
// @Success      200 {object} util.APIResponse "Patient already selected"
// @Success      201 {object} util.APIResponse "Patient selected"
// @Failure      400 {object} util.APIResponse "Missing or invalid ids"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor/select-patient [post]
func SelectPatient(c *gin.Context) {
	var req SelectPatientRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	doctorID, okDoctor := req.DoctorID.value()
	patientID, okPatient := req.PatientID.value()
	if !okDoctor || !okPatient {
		util.CallUserError(c, util.APIErrorParams{Msg: "doctor_id and patient_id are required", Err: fmt.Errorf("missing ids")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	if !validatePartiesOrRespond(c, db, doctorID, patientID) {
		return
	}

	created, err := selectPatient(db, doctorID, patientID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to select patient", Err: err})
		return
	}
	if !created {
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient already selected"})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Patient selected"})
}

// ListDoctorPatients godoc
// @Summary      List patients for a doctor
// @Description  Every patient, each flagged with whether the doctor has selected them
// @Tags         Doctor
// @Produce      json
// @Param        doctor_id query int true "Doctor ID"
// @Success      200 {object} util.APIResponse "Patients retrieved"
// @Failure      400 {object} util.APIResponse "Invalid doctor ID"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor/patients [get]
func ListDoctorPatients(c *gin.Context) {
	doctorID, ok := parseIDOrRespond(c, c.Query("doctor_id"), "doctor ID")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patients, err := listDoctorPatients(db, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"patients": patients}})
}
