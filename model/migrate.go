package model

import "gorm.io/gorm"

// AllModels lists every table owned by the application, in creation order.
var AllModels = []interface{}{
	&User{},
	&DoctorPatientRelation{},
	&Report{},
	&Appointment{},
	&SecurityLog{},
}

// Migrate creates missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels...)
}
