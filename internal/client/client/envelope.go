package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	maxMessageLen = 200
)

// envelope is the wrapped response shape. A JSON object is treated as an
// envelope only when its keys are "status" and "data" (and optionally
// "message"); anything else is a bare payload.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func asEnvelope(body []byte) (*envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, false
	}
	if _, ok := keys["status"]; !ok {
		return nil, false
	}
	if _, ok := keys["data"]; !ok {
		return nil, false
	}
	for k := range keys {
		if k != "status" && k != "data" && k != "message" {
			return nil, false
		}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	return &env, true
}

// decodeSuccess validates a 2xx body and decodes its payload into out.
func decodeSuccess(body []byte, out any) error {
	if out == nil {
		return nil
	}

	payload := bytes.TrimSpace(body)
	if env, ok := asEnvelope(payload); ok {
		switch env.Status {
		case statusSuccess:
			payload = bytes.TrimSpace(env.Data)
		case statusError:
			return validationFromBody(body)
		default:
			return fmt.Errorf("%w: unknown envelope status %q", common.ErrMalformedResponse, env.Status)
		}
	}

	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return fmt.Errorf("%w: empty body", common.ErrMalformedResponse)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return nil
}

// validationFromBody turns a 400/422 body into a ValidationError. It accepts
// the wrapped form, a bare field map (string or list values) and the usual
// single-message forms ("error", "detail", "message").
func validationFromBody(body []byte) *common.ValidationError {
	ve := &common.ValidationError{}

	raw := bytes.TrimSpace(body)
	if env, ok := asEnvelope(raw); ok {
		ve.Message = env.Message
		raw = bytes.TrimSpace(env.Data)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		if msg := strings.TrimSpace(string(raw)); msg != "" && ve.Message == "" {
			ve.Message = msg
		}
		return ve
	}

	for name, value := range fields {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			for _, m := range list {
				ve.Add(name, m)
			}
			continue
		}

		var single string
		if err := json.Unmarshal(value, &single); err != nil {
			continue
		}
		switch name {
		case "error", "detail", "message", "non_field_errors":
			if ve.Message == "" {
				ve.Message = single
			}
		default:
			ve.Add(name, single)
		}
	}
	return ve
}

// messageFromBody extracts a human message from an error body, if any.
func messageFromBody(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxMessageLen {
			msg = msg[:maxMessageLen] + "..."
		}
		return msg
	}
	for _, k := range []string{"error", "detail", "message"} {
		if s, ok := m[k].(string); ok {
			return s
		}
	}
	return ""
}
