package endpoint

import (
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

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseConfidence(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("confidence must be a number: %w", err)
	}
	return &v, nil
}

func listReports(db *gorm.DB, userID uint, role string) ([]model.ReportListItem, error) {
	reports := []model.ReportListItem{}
	q := db.Table("reports AS r")
	if role == model.RoleDoctor {
		q = q.Select("r.*, u.full_name AS other_party_name").
			Joins("JOIN users AS u ON u.id = r.patient_id").
			Where("r.doctor_id = ?", userID)
	} else {
		q = q.Select("r.*, u.full_name AS other_party_name").
			Joins("JOIN users AS u ON u.id = r.doctor_id").
			Where("r.patient_id = ?", userID)
	}
	err := q.Order("r.created_at DESC, r.id DESC").Scan(&reports).Error
	return reports, err
}

func getReportDetail(db *gorm.DB, id uint) (*model.ReportDetail, error) {
	var detail model.ReportDetail
	res := db.Table("reports AS r").
		Select("r.*, p.full_name AS patient_name, d.full_name AS doctor_name").
		Joins("LEFT JOIN users AS p ON p.id = r.patient_id").
		Joins("LEFT JOIN users AS d ON d.id = r.doctor_id").
		Where("r.id = ?", id).
		Limit(1).
		Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}
	return &detail, nil
}

func getReportDetailOrRespond(c *gin.Context, db *gorm.DB, id uint) (*model.ReportDetail, bool) {
	detail, err := getReportDetail(db, id)
	if errors.Is(err, ErrReportNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Report not found", Err: err})
		return nil, false
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve report", Err: err})
		return nil, false
	}
	return detail, true
}

// UploadReport godoc
// @Summary      Upload an embryo report
// @Description  Store an embryo image and create a report for the given patient and doctor
// @Tags         Reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Embryo image (png, jpg, jpeg)"
// @Param        patient_id formData int true "Patient ID"
// @Param        doctor_id formData int true "Doctor ID"
// @Param        result formData string false "Embryo grade"
// @Param        confidence formData number false "Confidence percentage"
// @Param        notes formData string false "Doctor notes"
// @Success      201 {object} util.APIResponse "Report created"
// @Failure      400 {object} util.APIResponse "Invalid file or ids"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /upload-report [post]
func UploadReport(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "No file part", Err: err})
		return
	}
	if fh.Filename == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "No selected file", Err: util.ErrEmptyFilename})
		return
	}
	if !util.AllowedFile(fh.Filename) {
		util.CallUserError(c, util.APIErrorParams{Msg: "File type not allowed", Err: util.ErrFileNotAllowed})
		return
	}

	patientID, ok := parseIDOrRespond(c, c.PostForm("patient_id"), "patient ID")
	if !ok {
		return
	}
	doctorID, ok := parseIDOrRespond(c, c.PostForm("doctor_id"), "doctor ID")
	if !ok {
		return
	}
	confidence, err := parseConfidence(c.PostForm("confidence"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid confidence", Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	if !validatePartiesOrRespond(c, db, doctorID, patientID) {
		return
	}

	store := middleware.GetUploadStore(c)
	if store == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Upload storage not available", Err: fmt.Errorf("upload store is nil")})
		return
	}
	stored, err := store.SaveMultipart(fh)
	if err != nil {
		if errors.Is(err, util.ErrFileNotAllowed) || errors.Is(err, util.ErrEmptyFilename) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid file name", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to store file", Err: err})
		return
	}

	report := model.Report{
		PatientID:  patientID,
		DoctorID:   doctorID,
		ImagePath:  stored,
		Result:     optionalString(c.PostForm("result")),
		Confidence: confidence,
		Notes:      optionalString(c.PostForm("notes")),
	}
	if err := db.Create(&report).Error; err != nil {
		removeStored(store, stored)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create report", Err: err})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Report uploaded", Data: gin.H{"report_id": report.ID}})
}

// ListReports godoc
// @Summary      List reports
// @Description  A doctor sees the reports they authored with the patient's name; anyone else sees their own reports with the doctor's name. Newest first.
// @Tags         Reports
// @Produce      json
// @Param        user_id query int true "User ID"
// @Param        role query string true "Role of the user"
// @Success      200 {object} util.APIResponse "Reports retrieved"
// @Failure      400 {object} util.APIResponse "Invalid user ID"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /reports [get]
func ListReports(c *gin.Context) {
	userID, ok := parseIDOrRespond(c, c.Query("user_id"), "user ID")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	reports, err := listReports(db, userID, c.Query("role"))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve reports", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"reports": reports}})
}

// GetReport godoc
// @Summary      Get a report
// @Description  One report with both party names
// @Tags         Reports
// @Produce      json
// @Param        id path int true "Report ID"
// @Success      200 {object} util.APIResponse "Report"
// @Failure      400 {object} util.APIResponse "Invalid report ID"
// @Failure      404 {object} util.APIResponse "Report not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /report/{id} [get]
func GetReport(c *gin.Context) {
	id, ok := parseIDOrRespond(c, c.Param("id"), "report ID")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	detail, ok := getReportDetailOrRespond(c, db, id)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: gin.H{"report": detail}})
}
