package endpoint

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"testing"

	"github.com/ariebrainware/embryo-ai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadReport(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.POST("/api/upload-report", UploadReport)
	d := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")
	p := createUser(t, env.db, "emma", model.RolePatient, "pw")

	form := newMultipartBody(map[string]string{
		"patient_id": strconv.Itoa(int(p.ID)),
		"doctor_id":  strconv.Itoa(int(d.ID)),
		"result":     "3-1-1",
		"confidence": "87.5",
		"notes":      "good morphology",
	}, "my embryo.png", pngBytes(t))

	w, resp, err := performRequest(env.router, requestSpec{method: http.MethodPost, requestPath: "/api/upload-report", body: form})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reportID := uint(resp["report_id"].(float64))

	var report model.Report
	require.NoError(t, env.db.First(&report, reportID).Error)
	assert.Regexp(t, regexp.MustCompile(`^\d+_my_embryo\.png$`), report.ImagePath)
	require.NotNil(t, report.Result)
	assert.Equal(t, "3-1-1", *report.Result)
	require.NotNil(t, report.Confidence)
	assert.InDelta(t, 87.5, *report.Confidence, 1e-9)

	_, err = os.Stat(env.store.Path(report.ImagePath))
	assert.NoError(t, err)
}

func TestUploadReport_InsertFailureRemovesImage(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.POST("/api/upload-report", UploadReport)
	d := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")
	p := createUser(t, env.db, "emma", model.RolePatient, "pw")
	failReportInserts(t, env.db)

	form := newMultipartBody(map[string]string{"patient_id": fmt.Sprint(p.ID), "doctor_id": fmt.Sprint(d.ID)}, "embryo.png", pngBytes(t))
	w, resp, err := performRequest(env.router, requestSpec{method: http.MethodPost, requestPath: "/api/upload-report", body: form})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create report", resp["message"])
	assertNoUploads(t, env)
}

func TestUploadReport_Rejections(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.POST("/api/upload-report", UploadReport)
	d := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")
	p := createUser(t, env.db, "emma", model.RolePatient, "pw")
	ids := map[string]string{"patient_id": fmt.Sprint(p.ID), "doctor_id": fmt.Sprint(d.ID)}

	tests := []struct {
		name     string
		fields   map[string]string
		filename string
		message  string
	}{
		{"no file", ids, "", "No file part"},
		{"bad extension", ids, "embryo.gif", "File type not allowed"},
		{"missing patient", map[string]string{"doctor_id": fmt.Sprint(d.ID)}, "e.png", "Invalid patient ID"},
		{"swapped roles", map[string]string{"patient_id": fmt.Sprint(d.ID), "doctor_id": fmt.Sprint(p.ID)}, "e.png", "Invalid doctor ID"},
		{"bad confidence", map[string]string{"patient_id": fmt.Sprint(p.ID), "doctor_id": fmt.Sprint(d.ID), "confidence": "high"}, "e.png", "Invalid confidence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := newMultipartBody(tt.fields, tt.filename, pngBytes(t))
			w, resp, err := performRequest(env.router, requestSpec{method: http.MethodPost, requestPath: "/api/upload-report", body: form})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, resp["message"])
		})
	}

	var count int64
	env.db.Model(&model.Report{}).Count(&count)
	assert.Zero(t, count)
	entries, err := os.ReadDir(env.store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave nothing on disk")
}

func TestListReports(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.GET("/api/reports", ListReports)
	d := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")
	p1 := createUser(t, env.db, "emma", model.RolePatient, "pw")
	p2 := createUser(t, env.db, "liam", model.RolePatient, "pw")
	older := createReport(t, env.db, d.ID, p1.ID, "3-1-1")
	newer := createReport(t, env.db, d.ID, p2.ID, "")
	other := createUser(t, env.db, "drno", model.RoleDoctor, "pw")
	createReport(t, env.db, other.ID, p1.ID, "1-1-1")

	items, err := listReports(env.db, d.ID, model.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, "User liam", items[0].OtherPartyName)
	assert.Nil(t, items[0].Result)
	assert.Equal(t, older.ID, items[1].ID)
	assert.Equal(t, "User emma", items[1].OtherPartyName)

	for _, item := range items {
		assert.Equal(t, d.ID, item.DoctorID)
	}

	items, err = listReports(env.db, p1.ID, model.RolePatient)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "User drno", items[0].OtherPartyName)
	assert.Equal(t, "User drwho", items[1].OtherPartyName)

	w, resp, err := performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: fmt.Sprintf("/api/reports?user_id=%d&role=patient", p2.ID)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	reports := resp["reports"].([]interface{})
	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].(map[string]interface{})["result"])

	w, _, err = performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: "/api/reports?role=doctor"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReport(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.GET("/api/report/:id", GetReport)
	d := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")
	p := createUser(t, env.db, "emma", model.RolePatient, "pw")
	r := createReport(t, env.db, d.ID, p.ID, "4-2-2")

	w, resp, err := performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: fmt.Sprintf("/api/report/%d", r.ID)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	report := resp["report"].(map[string]interface{})
	assert.Equal(t, "User emma", report["patient_name"])
	assert.Equal(t, "User drwho", report["doctor_name"])
	assert.Equal(t, "4-2-2", report["result"])

	w, _, err = performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: "/api/report/999"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _, err = performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: "/api/report/abc"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
