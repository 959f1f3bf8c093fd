package calllogs_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/calllogs"
	"github.com/suryanavv/ims/client"
)

type cannedDoer struct {
	requests []client.Request
	response string
	err      error
}

func (d *cannedDoer) DoJSON(_ context.Context, req client.Request, out interface{}) error {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return d.err
	}
	return json.Unmarshal([]byte(d.response), out)
}

func TestClinics(t *testing.T) {
	doer := &cannedDoer{response: `{"clinics":[{"phone_number":"+15550100","clinic_name":"North","total_calls":7}],
		"stats":{"total_clinics":1,"total_calls":7,"total_scheduled":3,"total_cancelled":1}}`}

	resp, err := calllogs.NewService(doer).Clinics(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Equal(t, "North", resp.Clinics[0].ClinicName)
	require.Equal(t, 3, resp.Stats.TotalScheduled)

	req := doer.requests[0]
	require.Equal(t, calllogs.ClinicsPath, req.Path)
	require.Equal(t, "1", req.Query.Get("page"))
	require.Equal(t, "100", req.Query.Get("per_page"))
}

func TestLogs(t *testing.T) {
	doer := &cannedDoer{response: `{"logs":[
		{"call_id":"c1","status":"scheduled","timestamp":"2025-02-01T10:00:00Z","duration":42},
		{"call_id":"c2","call_time":"2025-02-01T11:00:00Z","duration":"1m"}
	],"stats":{"total":2,"scheduled":1,"unknown":1}}`}

	resp, err := calllogs.NewService(doer).Logs(context.Background(), "+15550100", 2, 50)
	require.NoError(t, err)
	require.Len(t, resp.Logs, 2)
	require.Equal(t, "42s", resp.Logs[0].DurationText())
	require.Equal(t, "1m", resp.Logs[1].DurationText())
	require.Equal(t, "unknown", resp.Logs[1].StatusOrUnknown())
	require.Equal(t, "2025-02-01T11:00:00Z", resp.Logs[1].When())
	require.Equal(t, 1, resp.Stats.Unknown)
	require.NotNil(t, resp.Find("c2"))
	require.Nil(t, resp.Find("missing"))

	q := doer.requests[0].Query
	require.Equal(t, "+15550100", q.Get("phone_number"))
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "50", q.Get("per_page"))
}

func TestTranscriptFor(t *testing.T) {
	ctx := context.Background()

	t.Run("inline transcript wins", func(t *testing.T) {
		doer := &cannedDoer{}
		var log calllogs.CallLog
		require.NoError(t, json.Unmarshal([]byte(`{"call_id":"c1","transcript":[
			{"role":"agent","message":"Hello"},
			{"role":"caller","content":"Hi","timestamp":"10:00"},
			{"role":"agent"}
		]}`), &log))

		msgs, err := calllogs.NewService(doer).TranscriptFor(ctx, "+1", log)
		require.NoError(t, err)
		require.Equal(t, []calllogs.TranscriptMessage{
			{Role: "agent", Content: "Hello"},
			{Role: "caller", Content: "Hi", Timestamp: "10:00"},
			{Role: "agent", Content: ""},
		}, msgs)
		require.Empty(t, doer.requests)
	})

	t.Run("empty inline transcript is still inline", func(t *testing.T) {
		doer := &cannedDoer{}
		var log calllogs.CallLog
		require.NoError(t, json.Unmarshal([]byte(`{"call_id":"c1","transcript":[]}`), &log))

		msgs, err := calllogs.NewService(doer).TranscriptFor(ctx, "+1", log)
		require.NoError(t, err)
		require.Empty(t, msgs)
		require.Empty(t, doer.requests)
	})

	t.Run("fetches by call id", func(t *testing.T) {
		doer := &cannedDoer{response: `{"transcript":[{"role":"agent","content":"Booked"}]}`}

		msgs, err := calllogs.NewService(doer).TranscriptFor(ctx, "+1", calllogs.CallLog{CallID: "c9"})
		require.NoError(t, err)
		require.Equal(t, "Booked", msgs[0].Content)
		require.Equal(t, calllogs.TranscriptPath, doer.requests[0].Path)
		require.Equal(t, "c9", doer.requests[0].Query.Get("call_id"))
	})

	t.Run("nothing to go on", func(t *testing.T) {
		doer := &cannedDoer{}

		msgs, err := calllogs.NewService(doer).TranscriptFor(ctx, "+1", calllogs.CallLog{})
		require.NoError(t, err)
		require.NotNil(t, msgs)
		require.Empty(t, msgs)
		require.Empty(t, doer.requests)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		doer := &cannedDoer{err: &auth.RequestFailedError{StatusCode: 404, Message: "Transcript not found"}}

		_, err := calllogs.NewService(doer).TranscriptFor(ctx, "+1", calllogs.CallLog{CallID: "c9"})
		require.EqualError(t, err, "Transcript not found (status 404)")
	})
}

func TestTranscriptDocument(t *testing.T) {
	doc := calllogs.TranscriptDocument{CallID: "c1", PhoneNumber: "+1"}
	require.Equal(t, "transcript_c1.json", doc.FileName())
}
