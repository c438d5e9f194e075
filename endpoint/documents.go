package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/document"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// reportDetails returns the stored classifier details of a report, falling back to the label table.
func reportDetails(r model.Report) (classifier.Details, bool) {
	if len(r.Details) > 0 {
		var d classifier.Details
		if err := json.Unmarshal(r.Details, &d); err == nil {
			return d, true
		}
	}
	if r.Result == nil {
		return classifier.Details{}, false
	}
	return classifier.LookupDetails(*r.Result), true
}

func embryoReportDocument(detail model.ReportDetail) document.EmbryoReport {
	doc := document.EmbryoReport{
		ID:          detail.ID,
		CreatedAt:   detail.CreatedAt,
		PatientName: detail.PatientName,
		DoctorName:  detail.DoctorName,
		Result:      derefString(detail.Result),
		Confidence:  detail.Confidence,
		Notes:       derefString(detail.Notes),
	}
	if d, ok := reportDetails(detail.Report); ok {
		doc.Morphology = fmt.Sprintf("Fragmentasyon: %s, Simetri: %s", d.Fragmentation, d.Symmetry)
		doc.DevelopmentStage = fmt.Sprintf("%s hücre", d.CellCount)
	}
	return doc
}

func loadMedicalRecord(db *gorm.DB, patientID uint) (document.MedicalRecord, error) {
	var patient model.User
	if err := db.Where("id = ? AND role = ?", patientID, model.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return document.MedicalRecord{}, ErrUserNotFound
		}
		return document.MedicalRecord{}, err
	}

	reports, err := listReports(db, patientID, model.RolePatient)
	if err != nil {
		return document.MedicalRecord{}, err
	}
	entries := make([]document.RecordEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, document.RecordEntry{
			ReportID:   r.ID,
			CreatedAt:  r.CreatedAt,
			DoctorName: r.OtherPartyName,
			Result:     derefString(r.Result),
			Confidence: r.Confidence,
		})
	}

	return document.MedicalRecord{
		PatientID:        patient.ID,
		PatientName:      patient.FullName,
		Email:            patient.Email,
		Age:              patient.Age,
		Phone:            derefString(patient.Phone),
		BloodType:        derefString(patient.BloodType),
		Allergies:        derefString(patient.Allergies),
		MedicalHistory:   derefString(patient.MedicalHistory),
		EmergencyContact: derefString(patient.EmergencyContact),
		GeneratedAt:      time.Now(),
		Reports:          entries,
	}, nil
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadReportPDF godoc
// @Summary      Download an embryo report as PDF
// @Tags         Documents
// @Produce      application/pdf
// @Param        id path int true "Report ID"
// @Success      200 {file} file "PDF document"
// @Failure      400 {object} util.APIResponse "Invalid report ID"
// @Failure      404 {object} util.APIResponse "Report not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /reports/{id}/pdf [get]
func DownloadReportPDF(c *gin.Context) {
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

	data, err := document.RenderEmbryoReport(embryoReportDocument(*detail))
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to render PDF", Err: err})
		return
	}
	sendPDF(c, fmt.Sprintf("embryo_report_%d.pdf", id), data)
}

// DownloadMedicalRecordPDF godoc
// @Summary      Download a patient's medical record as PDF
// @Tags         Documents
// @Produce      application/pdf
// @Param        id path int true "Patient user ID"
// @Success      200 {file} file "PDF document"
// @Failure      400 {object} util.APIResponse "Invalid patient ID"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /medical-records/{id}/pdf [get]
func DownloadMedicalRecordPDF(c *gin.Context) {
	id, ok := parseIDOrRespond(c, c.Param("id"), "patient ID")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	record, err := loadMedicalRecord(db, id)
	if errors.Is(err, ErrUserNotFound) {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load medical record", Err: err})
		return
	}

	data, err := document.RenderMedicalRecord(record)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to render PDF", Err: err})
		return
	}
	sendPDF(c, fmt.Sprintf("medical_record_%d.pdf", id), data)
}
