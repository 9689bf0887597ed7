package models

import (
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

type Doctor struct {
	ID         ID         `json:"id,omitempty"`
	DocID      string     `json:"docID"`
	FirstName  string     `json:"fName"`
	LastName   string     `json:"lName"`
	Email      string     `json:"emailID,omitempty"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
	Department string     `json:"department,omitempty"`
	JoinedOn   string     `json:"Doj,omitempty"`
	Address    string     `json:"address,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (d Doctor) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// Validate checks the doctor form: docID, fName and lName are required and
// emailID, when given, must be a plain address.
func (d Doctor) Validate() error {
	ve := &common.ValidationError{}
	required(ve, "docID", d.DocID)
	required(ve, "fName", d.FirstName)
	required(ve, "lName", d.LastName)
	validEmail(ve, "emailID", d.Email)
	validDate(ve, "Doj", d.JoinedOn)
	return ve.OrNil()
}
