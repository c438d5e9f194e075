package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/middleware"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyzeRequest carries a base64 image, optionally with the parties to file a report under.
type AnalyzeRequest struct {
	Image     string  `json:"image" example:"data:image/png;base64,iVBORw0KGgo..."`
	PatientID *flexID `json:"patient_id" swaggertype:"integer" example:"2"`
	DoctorID  *flexID `json:"doctor_id" swaggertype:"integer" example:"1"`
	Notes     *string `json:"notes"`
}

// saveAnalysis stores the analysed image and files a report with the grade.
func saveAnalysis(db *gorm.DB, store *util.UploadStore, raw []byte, doctorID, patientID uint, notes *string, res classifier.Result) (uint, error) {
	stored, err := store.SaveBytes("embryo.png", raw)
	if err != nil {
		return 0, err
	}
	class := res.Class
	confidence := res.Confidence
	report := model.Report{
		PatientID:  patientID,
		DoctorID:   doctorID,
		ImagePath:  stored,
		Result:     &class,
		Confidence: &confidence,
		Notes:      notes,
		Details:    marshalJSON(res.Details),
	}
	if err := db.Create(&report).Error; err != nil {
		removeStored(store, stored)
		return 0, err
	}
	return report.ID, nil
}

// AnalyzeEmbryo godoc
// @Summary      Grade an embryo image
// @Description  Classify a base64 image into one of 19 embryo grades. When patient_id and doctor_id are both given the image is stored and a report is created.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Image payload"
// @Success      200 {object} util.APIResponse "Classification result"
// @Failure      400 {object} util.APIResponse "Missing image or invalid ids"
// @Failure      500 {object} util.APIResponse "Classification failed"
// @Router       /analyze-embryo [post]
func AnalyzeEmbryo(c *gin.Context) {
	var req AnalyzeRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "image is required", Err: fmt.Errorf("missing image")})
		return
	}

	clf := middleware.GetClassifier(c)
	if clf == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Classifier not available", Err: fmt.Errorf("classifier is nil")})
		return
	}

	patientID, hasPatient := req.PatientID.value()
	doctorID, hasDoctor := req.DoctorID.value()
	persist := hasPatient && hasDoctor

	var db *gorm.DB
	if persist {
		var ok bool
		if db, ok = getDBOrRespond(c); !ok {
			return
		}
		if !validatePartiesOrRespond(c, db, doctorID, patientID) {
			return
		}
	}

	raw, err := classifier.DecodePayload(req.Image)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Classification failed", Err: err})
		return
	}
	img, err := classifier.DecodeBytes(raw)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Classification failed", Err: err})
		return
	}
	res, err := clf.ClassifyImage(c.Request.Context(), img)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Classification failed", Err: err})
		return
	}

	data := gin.H{"class": res.Class, "details": res.Details, "confidence": res.Confidence}
	var reportID uint
	if persist {
		store := middleware.GetUploadStore(c)
		if store == nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Upload storage not available", Err: fmt.Errorf("upload store is nil")})
			return
		}
		if reportID, err = saveAnalysis(db, store, raw, doctorID, patientID, req.Notes, res); err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to save report", Err: err})
			return
		}
		data["report_id"] = reportID
	}

	util.LogClassification(c.ClientIP(), res.Class, res.Confidence, reportID)
	util.CallSuccessOK(c, util.APISuccessParams{Data: data})
}
