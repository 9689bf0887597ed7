package models

import (
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

// Appointment links a doctor and a patient at a date and time. Status is
// false while the appointment is open or cancelled and true once completed.
type Appointment struct {
	ID             ID         `json:"id,omitempty"`
	DocID          string     `json:"docID"`
	DocName        string     `json:"docName,omitempty"`
	PatID          string     `json:"patID"`
	PatName        string     `json:"patName,omitempty"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Status         bool       `json:"status"`
	Department     string     `json:"department,omitempty"`
	PatientAddress string     `json:"patient_address,omitempty"`
	BlockchainID   string     `json:"blockchain_id,omitempty"`
	BlockchainTx   string     `json:"blockchain_tx,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func (a Appointment) Validate() error {
	ve := &common.ValidationError{}
	required(ve, "docID", a.DocID)
	required(ve, "patID", a.PatID)
	required(ve, "date", a.Date)
	required(ve, "time", a.Time)
	validDate(ve, "date", a.Date)
	validTime(ve, "time", a.Time)
	return ve.OrNil()
}

// StatusUpdate is the PATCH body used to cancel or complete an appointment.
type StatusUpdate struct {
	Status bool `json:"status"`
}
