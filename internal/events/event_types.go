package events

import (
	"time"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventDoctorRegistered  EventType = "doctor_registered"
	EventDoctorUpdated     EventType = "doctor_updated"
	EventSpecialtyCreated  EventType = "specialty_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string             `json:"email"`
	Name  string             `json:"name"`
	Role  domain.AccountRole `json:"role"`
}

// DoctorRegisteredPayload payload.
type DoctorRegisteredPayload struct {
	AccountID     string `json:"account_id"`
	LicenseNumber string `json:"license_number"`
	SpecialtyID   string `json:"specialty_id"`
}

// DoctorUpdatedPayload payload.
type DoctorUpdatedPayload struct {
	AccountID      string `json:"account_id"`
	LicenseNumber  string `json:"license_number"`
	OldSpecialtyID string `json:"old_specialty_id"`
	NewSpecialtyID string `json:"new_specialty_id"`
}

// SpecialtyCreatedPayload payload.
type SpecialtyCreatedPayload struct {
	Name string `json:"name"`
}
