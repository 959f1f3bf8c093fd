package apimodel

import (
	"encoding/json"
	"strings"
)

// ErrorResponse is the error body shape of the backend. Detail is either a plain
// string or a list of validation issues, each carrying a msg.
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// ParseErrorResponse decodes body, tolerating anything that is not JSON.
func ParseErrorResponse(body []byte) *ErrorResponse {
	er := &ErrorResponse{}
	if len(body) == 0 {
		return er
	}
	if err := json.Unmarshal(body, er); err != nil {
		return &ErrorResponse{}
	}
	return er
}

// DetailText returns detail as text: the string form, or the msg of the first
// validation issue. Empty when neither is present.
func (e *ErrorResponse) DetailText() string {
	if e == nil || len(e.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var issues []validationIssue
	if err := json.Unmarshal(e.Detail, &issues); err == nil {
		if len(issues) > 0 {
			return strings.TrimSpace(issues[0].Msg)
		}
		return ""
	}

	var issue validationIssue
	if err := json.Unmarshal(e.Detail, &issue); err == nil {
		return strings.TrimSpace(issue.Msg)
	}
	return ""
}

// MessageOr returns detail, then message, then fallback.
func (e *ErrorResponse) MessageOr(fallback string) string {
	if d := e.DetailText(); d != "" {
		return d
	}
	if e != nil && strings.TrimSpace(e.Message) != "" {
		return strings.TrimSpace(e.Message)
	}
	return fallback
}

// DetailOr ignores message and returns detail or fallback.
func (e *ErrorResponse) DetailOr(fallback string) string {
	if d := e.DetailText(); d != "" {
		return d
	}
	return fallback
}
