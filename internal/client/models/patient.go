package models

import (
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

type Patient struct {
	ID        ID         `json:"id,omitempty"`
	PatID     string     `json:"patID"`
	Name      string     `json:"patName"`
	Address   string     `json:"address,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (p Patient) Validate() error {
	ve := &common.ValidationError{}
	required(ve, "patID", p.PatID)
	required(ve, "patName", p.Name)
	return ve.OrNil()
}
