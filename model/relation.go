package model

import "time"

// DoctorPatientRelation records that a doctor has taken a patient into their caseload.
// A (doctor, patient) pair exists at most once.
type DoctorPatientRelation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DoctorID  uint      `gorm:"column:doctor_id;not null;uniqueIndex:idx_doctor_patient" json:"doctor_id"`
	PatientID uint      `gorm:"column:patient_id;not null;uniqueIndex:idx_doctor_patient" json:"patient_id"`
	CreatedAt time.Time `json:"created_at"`

	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}

func (DoctorPatientRelation) TableName() string {
	return "doctor_patient_relations"
}
