package model

import "time"

// User is a patient or doctor account together with the patient's clinical profile.
// @Description User account and profile
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id" example:"1"`
	FullName         string    `gorm:"column:full_name;not null" json:"full_name" example:"Emma Thompson"`
	Email            string    `gorm:"column:email;not null;uniqueIndex;size:191" json:"email" example:"emma@example.com"`
	Username         string    `gorm:"column:username;not null;uniqueIndex;size:191" json:"username" example:"emma"`
	Password         string    `gorm:"column:password;not null" json:"-"`
	Role             string    `gorm:"column:role;not null;size:16;index" json:"role" example:"patient"`
	Age              *int      `gorm:"column:age" json:"age" example:"34"`
	Phone            *string   `gorm:"column:phone" json:"phone"`
	Address          *string   `gorm:"column:address" json:"address"`
	BloodType        *string   `gorm:"column:blood_type;size:8" json:"blood_type" example:"A+"`
	EmergencyContact *string   `gorm:"column:emergency_contact" json:"emergency_contact"`
	EmergencyPhone   *string   `gorm:"column:emergency_phone" json:"emergency_phone"`
	Allergies        *string   `gorm:"column:allergies;type:text" json:"allergies"`
	MedicalHistory   *string   `gorm:"column:medical_history;type:text" json:"medical_history"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
