package endpoint

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrAccountExists        = errors.New("email or username already in use")
	ErrInvalidDoctor        = errors.New("invalid doctor id")
	ErrInvalidPatient       = errors.New("invalid patient id")
	ErrReportNotFound       = errors.New("report not found")
	ErrLinkedReportNotFound = errors.New("linked embryo report not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")
)
