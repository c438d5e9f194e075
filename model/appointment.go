package model

import "time"

// AppointmentStatusScheduled is the status every appointment starts with.
// Later statuses are free-form strings supplied by the caller.
const AppointmentStatusScheduled = "scheduled"

// Appointment is a scheduled clinical event between a patient and a doctor,
// optionally referring to an earlier embryo report. Appointments are never deleted.
// @Description Appointment
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id" example:"3"`
	PatientID       uint      `gorm:"column:patient_id;not null;index" json:"patient_id" example:"2"`
	DoctorID        uint      `gorm:"column:doctor_id;not null;index" json:"doctor_id" example:"1"`
	AppointmentType string    `gorm:"column:appointment_type;not null" json:"appointment_type" example:"Embryo Transfer Consultation"`
	LinkedEmbryoID  *uint     `gorm:"column:linked_embryo_id" json:"linked_embryo_id" example:"7"`
	DateTime        string    `gorm:"column:date_time;not null;index" json:"date_time" example:"2025-03-14T10:30:00"`
	Status          string    `gorm:"column:status;not null;default:scheduled" json:"status" example:"scheduled"`
	Notes           *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Patient      User    `gorm:"foreignKey:PatientID" json:"-"`
	Doctor       User    `gorm:"foreignKey:DoctorID" json:"-"`
	LinkedReport *Report `gorm:"foreignKey:LinkedEmbryoID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentListItem is an appointment joined with the other party's name and the
// result of the linked report, if any.
type AppointmentListItem struct {
	Appointment
	PatientName  string  `gorm:"column:patient_name" json:"patient_name,omitempty"`
	DoctorName   string  `gorm:"column:doctor_name" json:"doctor_name,omitempty"`
	EmbryoResult *string `gorm:"column:embryo_result" json:"embryo_result"`
}
