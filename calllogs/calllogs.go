// Package calllogs reads the voice agent's call logs and transcripts, grouped by
// the clinic phone number that received the calls.
package calllogs

import (
	"fmt"
	"strings"
)

// Clinic is a clinic phone line with calls on record.
type Clinic struct {
	PhoneNumber string `json:"phone_number"`
	ClinicName  string `json:"clinic_name"`
	TotalCalls  int    `json:"total_calls"`
}

// ClinicsStats aggregates over every clinic.
type ClinicsStats struct {
	TotalClinics   int `json:"total_clinics"`
	TotalCalls     int `json:"total_calls"`
	TotalScheduled int `json:"total_scheduled"`
	TotalCancelled int `json:"total_cancelled"`
}

type ClinicsResponse struct {
	Clinics []Clinic      `json:"clinics"`
	Stats   *ClinicsStats `json:"stats,omitempty"`
	Total   int           `json:"total,omitempty"`
	Page    int           `json:"page,omitempty"`
}

// TranscriptEntry is one utterance as embedded in a log. Older logs carry the
// text in message, newer ones in content.
type TranscriptEntry struct {
	Role      string  `json:"role"`
	Message   *string `json:"message,omitempty"`
	Content   *string `json:"content,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Text returns message, then content, then "".
func (e TranscriptEntry) Text() string {
	if e.Message != nil {
		return *e.Message
	}
	if e.Content != nil {
		return *e.Content
	}
	return ""
}

// CallLog is one call handled by the voice agent.
type CallLog struct {
	CallID     string            `json:"call_id,omitempty"`
	Status     string            `json:"status,omitempty"`
	Timestamp  string            `json:"timestamp,omitempty"`
	CallTime   string            `json:"call_time,omitempty"`
	Duration   interface{}       `json:"duration,omitempty"`
	Details    string            `json:"details,omitempty"`
	Transcript []TranscriptEntry `json:"transcript,omitempty"`
}

// StatusOrUnknown returns the status, "unknown" when blank.
func (l *CallLog) StatusOrUnknown() string {
	if strings.TrimSpace(l.Status) == "" {
		return "unknown"
	}
	return l.Status
}

// When returns timestamp, falling back to call_time.
func (l *CallLog) When() string {
	if l.Timestamp != "" {
		return l.Timestamp
	}
	return l.CallTime
}

// DurationText renders numeric durations as seconds ("42s") and passes text through.
func (l *CallLog) DurationText() string {
	switch d := l.Duration.(type) {
	case float64:
		return fmt.Sprintf("%gs", d)
	case string:
		return d
	}
	return ""
}

// LogsStats counts a clinic's calls by outcome.
type LogsStats struct {
	Total       int `json:"total"`
	Scheduled   int `json:"scheduled"`
	Cancelled   int `json:"cancelled"`
	Rescheduled int `json:"rescheduled"`
	Failure     int `json:"failure"`
	Unknown     int `json:"unknown"`
}

type LogsResponse struct {
	Logs  []CallLog  `json:"logs"`
	Stats *LogsStats `json:"stats,omitempty"`
}

// Find returns the log with callID, or nil.
func (r *LogsResponse) Find(callID string) *CallLog {
	for i := range r.Logs {
		if r.Logs[i].CallID == callID {
			return &r.Logs[i]
		}
	}
	return nil
}

// TranscriptMessage is one normalised utterance.
type TranscriptMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type TranscriptResponse struct {
	Transcript []TranscriptMessage `json:"transcript"`
}

// TranscriptDocument is the downloadable form of a transcript.
type TranscriptDocument struct {
	CallID      string              `json:"call_id"`
	PhoneNumber string              `json:"phone_number"`
	Transcript  []TranscriptMessage `json:"transcript"`
}

// FileName is the suggested download file name
func (d *TranscriptDocument) FileName() string {
	return "transcript_" + d.CallID + ".json"
}
