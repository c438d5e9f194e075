package model

import (
	"time"

	"gorm.io/datatypes"
)

// Report is one uploaded embryo image, optionally graded by the classifier.
// @Description Embryo report
type Report struct {
	ID         uint           `gorm:"primaryKey" json:"id" example:"7"`
	PatientID  uint           `gorm:"column:patient_id;not null;index" json:"patient_id" example:"2"`
	DoctorID   uint           `gorm:"column:doctor_id;not null;index" json:"doctor_id" example:"1"`
	ImagePath  string         `gorm:"column:image_path;not null" json:"image_path" example:"1718000000_embryo.png"`
	Result     *string        `gorm:"column:result" json:"result" example:"3-1-1"`
	Confidence *float64       `gorm:"column:confidence" json:"confidence" example:"87.12"`
	Notes      *string        `gorm:"column:notes;type:text" json:"notes"`
	Details    datatypes.JSON `gorm:"column:details" json:"details,omitempty" swaggertype:"object"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`

	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportListItem is a report row joined with the name of the other party
// (the patient for a doctor, the doctor for a patient).
type ReportListItem struct {
	Report
	OtherPartyName string `gorm:"column:other_party_name" json:"other_party_name"`
}

// ReportDetail is a report row joined with both party names.
type ReportDetail struct {
	Report
	PatientName string `gorm:"column:patient_name" json:"patient_name"`
	DoctorName  string `gorm:"column:doctor_name" json:"doctor_name"`
}
