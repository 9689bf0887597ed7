package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	TimeLayoutLong  = "15:04:05"
	msgRequired     = "is required"
	msgInvalidDate  = "must be a date in YYYY-MM-DD format"
	msgInvalidTime  = "must be a time in HH:MM format"
	msgInvalidEmail = "must be a valid email address"
)

func required(ve *common.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, msgRequired)
	}
}

func requiredID(ve *common.ValidationError, field string, value ID) {
	required(ve, field, string(value))
}

func validDate(ve *common.ValidationError, field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		ve.Add(field, msgInvalidDate)
	}
}

func validTime(ve *common.ValidationError, field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(TimeLayout, value); err == nil {
		return
	}
	if _, err := time.Parse(TimeLayoutLong, value); err != nil {
		ve.Add(field, msgInvalidTime)
	}
}

func validEmail(ve *common.ValidationError, field, value string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		ve.Add(field, msgInvalidEmail)
	}
}
