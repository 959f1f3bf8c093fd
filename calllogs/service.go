package calllogs

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/suryanavv/ims/client"
)

// Call log endpoints
const (
	ClinicsPath    = "/api/dashboard/google-calendar/clinics"
	LogsPath       = "/api/dashboard/google-calendar/logs"
	TranscriptPath = "/api/dashboard/google-calendar/transcript"

	DefaultPerPage = 100
)

// Repo is the call log API.
type Repo interface {
	Clinics(ctx context.Context, page, perPage int) (*ClinicsResponse, error)
	Logs(ctx context.Context, phoneNumber string, page, perPage int) (*LogsResponse, error)
	Transcript(ctx context.Context, phoneNumber, callID string) ([]TranscriptMessage, error)
	TranscriptFor(ctx context.Context, phoneNumber string, log CallLog) ([]TranscriptMessage, error)
}

// Doer is the part of client.Client the service needs.
type Doer interface {
	DoJSON(ctx context.Context, req client.Request, out interface{}) error
}

var _ Repo = (*Service)(nil)

type Service struct {
	client Doer
}

func NewService(c Doer) *Service {
	return &Service{client: c}
}

func (s *Service) Clinics(ctx context.Context, page, perPage int) (*ClinicsResponse, error) {
	var out ClinicsResponse
	if err := s.client.DoJSON(ctx, client.Get(ClinicsPath, pagination(page, perPage)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Logs(ctx context.Context, phoneNumber string, page, perPage int) (*LogsResponse, error) {
	q := pagination(page, perPage)
	q.Set("phone_number", phoneNumber)

	var out LogsResponse
	if err := s.client.DoJSON(ctx, client.Get(LogsPath, q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Transcript(ctx context.Context, phoneNumber, callID string) ([]TranscriptMessage, error) {
	q := url.Values{}
	q.Set("phone_number", phoneNumber)
	q.Set("call_id", callID)

	var out TranscriptResponse
	if err := s.client.DoJSON(ctx, client.Get(TranscriptPath, q), &out); err != nil {
		return nil, err
	}
	if out.Transcript == nil {
		return []TranscriptMessage{}, nil
	}
	return out.Transcript, nil
}

// TranscriptFor prefers a transcript embedded in the log, then fetches by call
// id, and otherwise returns an empty transcript without calling the backend.
func (s *Service) TranscriptFor(ctx context.Context, phoneNumber string, callLog CallLog) ([]TranscriptMessage, error) {
	if callLog.Transcript != nil {
		messages := make([]TranscriptMessage, 0, len(callLog.Transcript))
		for _, e := range callLog.Transcript {
			messages = append(messages, TranscriptMessage{Role: e.Role, Content: e.Text(), Timestamp: e.Timestamp})
		}
		return messages, nil
	}

	if callLog.CallID == "" {
		log.Debug().Str("phone_number", phoneNumber).Msg("call log has no transcript and no call id")
		return []TranscriptMessage{}, nil
	}
	return s.Transcript(ctx, phoneNumber, callLog.CallID)
}

func pagination(page, perPage int) url.Values {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}
