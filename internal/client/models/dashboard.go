package models

import (
	"encoding/json"
	"errors"
)

var errNoCounts = errors.New("counts: no doctor or patient count in payload")

// Counts is the dashboard summary.
type Counts struct {
	Doctors  int `json:"doctor_count"`
	Patients int `json:"patient_count"`
}

// UnmarshalJSON also accepts the legacy {"docCount", "patCount"} shape.
func (c *Counts) UnmarshalJSON(b []byte) error {
	var raw struct {
		Doctors        *int `json:"doctor_count"`
		Patients       *int `json:"patient_count"`
		LegacyDoctors  *int `json:"docCount"`
		LegacyPatients *int `json:"patCount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.Doctors == nil && raw.Patients == nil && raw.LegacyDoctors == nil && raw.LegacyPatients == nil {
		return errNoCounts
	}

	*c = Counts{}
	switch {
	case raw.Doctors != nil:
		c.Doctors = *raw.Doctors
	case raw.LegacyDoctors != nil:
		c.Doctors = *raw.LegacyDoctors
	}
	switch {
	case raw.Patients != nil:
		c.Patients = *raw.Patients
	case raw.LegacyPatients != nil:
		c.Patients = *raw.LegacyPatients
	}
	return nil
}
