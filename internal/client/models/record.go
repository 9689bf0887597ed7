package models

import "github.com/dmitrijs2005/ehrdesk/internal/common"

type MedicalRecord struct {
	ID               ID     `json:"id,omitempty"`
	PatientID        ID     `json:"patientId"`
	DoctorID         ID     `json:"doctorId"`
	Date             string `json:"date,omitempty"`
	Diagnosis        string `json:"diagnosis"`
	Prescription     string `json:"prescription"`
	Notes            string `json:"notes,omitempty"`
	BlockchainTxHash string `json:"blockchainTxHash,omitempty"`
}

func (r MedicalRecord) Validate() error {
	ve := &common.ValidationError{}
	requiredID(ve, "patientId", r.PatientID)
	requiredID(ve, "doctorId", r.DoctorID)
	required(ve, "diagnosis", r.Diagnosis)
	required(ve, "prescription", r.Prescription)
	validDate(ve, "date", r.Date)
	return ve.OrNil()
}
