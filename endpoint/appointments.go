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

// CreateAppointmentRequest schedules an appointment.
type CreateAppointmentRequest struct {
	PatientID       *flexID `json:"patientId" swaggertype:"integer" example:"2"`
	DoctorID        *flexID `json:"doctorId" swaggertype:"integer" example:"1"`
	AppointmentType string  `json:"appointmentType" example:"Embryo Transfer Consultation"`
	DateTime        string  `json:"dateTime" example:"2025-03-14T10:30:00"`
	LinkedEmbryo    *flexID `json:"linkedEmbryo" swaggertype:"integer" example:"7"`
	Notes           *string `json:"notes"`
}

// UpdateAppointmentRequest changes any of status, dateTime and notes.
type UpdateAppointmentRequest struct {
	ID       *flexID `json:"id" swaggertype:"integer" example:"3"`
	Status   *string `json:"status" example:"completed"`
	DateTime *string `json:"dateTime" example:"2025-03-15T09:00:00"`
	Notes    *string `json:"notes"`
}

func (r UpdateAppointmentRequest) updates() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.DateTime != nil {
		fields["date_time"] = *r.DateTime
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	return fields
}

// checkLinkedReport verifies the report exists and belongs to the patient.
func checkLinkedReport(db *gorm.DB, reportID, patientID uint) error {
	var count int64
	if err := db.Model(&model.Report{}).Where("id = ? AND patient_id = ?", reportID, patientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrLinkedReportNotFound
	}
	return nil
}

func listAppointments(db *gorm.DB, userID uint, role string) ([]model.AppointmentListItem, error) {
	items := []model.AppointmentListItem{}
	q := db.Table("appointments AS a").
		Joins("LEFT JOIN reports AS e ON e.id = a.linked_embryo_id")
	if role == model.RoleDoctor {
		q = q.Select("a.*, u.full_name AS patient_name, e.result AS embryo_result").
			Joins("JOIN users AS u ON u.id = a.patient_id").
			Where("a.doctor_id = ?", userID)
	} else {
		q = q.Select("a.*, u.full_name AS doctor_name, e.result AS embryo_result").
			Joins("JOIN users AS u ON u.id = a.doctor_id").
			Where("a.patient_id = ?", userID)
	}
	err := q.Order("a.date_time ASC, a.id ASC").Scan(&items).Error
	return items, err
}

// updateAppointment applies fields to appointment id. It returns ErrAppointmentNotFound when absent.
func updateAppointment(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}
	var appt model.Appointment
	if err := db.First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	return db.Model(&appt).Updates(fields).Error
}

// CreateAppointment godoc
// @Summary      Create an appointment
// @Description  Schedule an appointment between a patient and a doctor, optionally linked to one of the patient's embryo reports
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        request body CreateAppointmentRequest true "Appointment"
// @Success      201 {object} util.APIResponse "Appointment created"
// @Failure      400 {object} util.APIResponse "Missing field or invalid ids"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments [post]
func CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	patientID, okPatient := req.PatientID.value()
	doctorID, okDoctor := req.DoctorID.value()
	if !okPatient || !okDoctor {
		util.CallUserError(c, util.APIErrorParams{Msg: "patientId and doctorId are required", Err: fmt.Errorf("missing ids")})
		return
	}
	req.AppointmentType = strings.TrimSpace(req.AppointmentType)
	req.DateTime = strings.TrimSpace(req.DateTime)
	if req.AppointmentType == "" || req.DateTime == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "appointmentType and dateTime are required", Err: fmt.Errorf("missing fields")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	if !validatePartiesOrRespond(c, db, doctorID, patientID) {
		return
	}

	appt := model.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentType: req.AppointmentType,
		DateTime:        req.DateTime,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}
	if linked, ok := req.LinkedEmbryo.value(); ok {
		if err := checkLinkedReport(db, linked, patientID); err != nil {
			if errors.Is(err, ErrLinkedReportNotFound) {
				util.CallUserError(c, util.APIErrorParams{Msg: "Linked embryo report not found", Err: err})
				return
			}
			util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
			return
		}
		appt.LinkedEmbryoID = &linked
	}

	if err := db.Create(&appt).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create appointment", Err: err})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Appointment created", Data: gin.H{"appointment_id": appt.ID}})
}

// ListAppointments godoc
// @Summary      List appointments
// @Description  Appointments of a user ordered by date, each with the other party's name and the linked embryo result
// @Tags         Appointments
// @Produce      json
// @Param        userId query int true "User ID"
// @Param        role query string true "Role of the user"
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Failure      400 {object} util.APIResponse "Invalid user ID"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments [get]
func ListAppointments(c *gin.Context) {
	userID, ok := parseIDOrRespond(c, c.Query("userId"), "user ID")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	items, err := listAppointments(db, userID, c.Query("role"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"appointments": items}})
}

// UpdateAppointment godoc
// @Summary      Update an appointment
// @Description  Change status, dateTime or notes. The id comes from the path or the body.
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        id path int false "Appointment ID"
// @Param        request body UpdateAppointmentRequest true "Fields to change"
// @Success      200 {object} util.APIResponse "Appointment updated"
// @Failure      400 {object} util.APIResponse "Missing id or no fields to update"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/{id} [put]
func UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}

	var id uint
	if raw := c.Param("id"); raw != "" {
		parsed, ok := parseIDOrRespond(c, raw, "appointment ID")
		if !ok {
			return
		}
		id = parsed
	} else if v, ok := req.ID.value(); ok {
		id = v
	} else {
		util.CallUserError(c, util.APIErrorParams{Msg: "Appointment id is required", Err: fmt.Errorf("missing id")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	err := updateAppointment(db, id, req.updates())
	switch {
	case err == nil:
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment updated"})
	case errors.Is(err, ErrNoFieldsToUpdate):
		util.CallUserError(c, util.APIErrorParams{Msg: "No fields to update", Err: err})
	case errors.Is(err, ErrAppointmentNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Appointment not found", Err: err})
	default:
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update appointment", Err: err})
	}
}
