package clinics_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/client"
	"github.com/suryanavv/ims/clinics"
	ierrors "github.com/suryanavv/ims/internal/errors"
)

// recordingDoer captures requests and answers with a canned JSON body.
type recordingDoer struct {
	requests []client.Request
	response string
	err      error
}

func (d *recordingDoer) DoJSON(_ context.Context, req client.Request, out interface{}) error {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return d.err
	}
	if out == nil || d.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(d.response), out)
}

// formFields decodes a multipart request into field values and file names.
func formFields(t *testing.T, req client.Request) (map[string]string, []string, map[string]string) {
	t.Helper()

	_, params, err := mime.ParseMediaType(req.ContentType)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	values := map[string]string{}
	var order []string
	files := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()] = part.FileName()
			continue
		}
		values[part.FormName()] = string(data)
		order = append(order, part.FormName())
	}
	return values, order, files
}

func TestList(t *testing.T) {
	doer := &recordingDoer{response: `{"clinics":[{"clinic_id":4,"clinic_name":"North","email":"n@x.com",
		"created_at":"2025-01-01","integrations":[{"integration_id":2,"integration_name":"Google Calendar","service_name":"voice"}],
		"forms":[{"form_id":9,"form_name":"I-693"}]}],"total":1}`}
	svc := clinics.NewService(doer)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, []int64{2}, list.Clinics[0].IntegrationIDs())
	require.Equal(t, []int64{9}, list.Clinics[0].FormIDs())
	require.Equal(t, http.MethodGet, doer.requests[0].Method)
	require.Equal(t, "/api/clinic/clinics", doer.requests[0].Path)
}

func TestGetDeleteResend(t *testing.T) {
	ctx := context.Background()
	doer := &recordingDoer{response: `{"clinic":{"clinic_id":4},"users":[],"message":"done"}`}
	svc := clinics.NewService(doer)

	detail, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	require.EqualValues(t, 4, detail.Clinic["clinic_id"])

	msg, err := svc.Delete(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "done", msg.Message)

	_, err = svc.ResendOnboarding(ctx, 11)
	require.NoError(t, err)

	require.Equal(t, "/api/clinic/clinic/4", doer.requests[0].Path)
	require.Equal(t, http.MethodDelete, doer.requests[1].Method)
	require.Equal(t, "/api/clinic/delete-clinic/4", doer.requests[1].Path)
	require.Equal(t, http.MethodPost, doer.requests[2].Method)
	require.Equal(t, "/api/clinic/resend-onboarding/11", doer.requests[2].Path)
}

func TestCreate(t *testing.T) {
	doer := &recordingDoer{response: `{"message":"created","clinic_id":5,"user_id":8,"integrations_assigned":2,"forms_assigned":1}`}
	svc := clinics.NewService(doer)

	resp, err := svc.Create(context.Background(), clinics.CreateRequest{
		FullName:     "Ada Admin",
		Email:        "ada@north.com",
		ClinicName:   "North",
		Phone:        "555-0100",
		MobileNumber: "555-0101",
		Details: clinics.Details{
			AddressCity:       "Austin",
			IntegrationAccess: []int64{1, 3},
			FormAccess:        []int64{7},
			Schedule: clinics.Schedule{
				"Monday": {Open: "09:00", Close: "17:00"},
				"Sunday": {Closed: true},
			},
		},
		Logo: &clinics.Logo{Filename: "logo.png", Content: []byte("png")},
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), resp.ClinicID)

	req := doer.requests[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/api/clinic/create-clinic", req.Path)

	values, order, files := formFields(t, req)
	require.Equal(t, []string{"full_name", "email", "clinic_name", "phone", "mobile_number",
		"address_city", "integration_access", "form_access", "clinic_schedule"}, order)
	require.Equal(t, "1,3", values["integration_access"])
	require.Equal(t, "7", values["form_access"])
	require.JSONEq(t, `{"Monday":{"open":"09:00","close":"17:00"},"Sunday":{"open":"","close":"","closed":true}}`, values["clinic_schedule"])
	require.Equal(t, "logo.png", files["file"])
	require.NotContains(t, values, "fax")
}

func TestCreateValidation(t *testing.T) {
	doer := &recordingDoer{}
	svc := clinics.NewService(doer)

	_, err := svc.Create(context.Background(), clinics.CreateRequest{Email: "x@y.com", ClinicName: "North"})
	require.ErrorIs(t, err, ierrors.ErrMissingField)
	require.Contains(t, err.Error(), "full_name, mobile_number, phone")

	_, err = svc.Create(context.Background(), clinics.CreateRequest{
		FullName: "A", Email: "a@b.com", ClinicName: "N", Phone: "1", MobileNumber: "2",
		Details: clinics.Details{Schedule: clinics.Schedule{"Funday": {Open: "09:00", Close: "10:00"}}},
	})
	require.ErrorIs(t, err, ierrors.ErrInvalidSchedule)
	require.Empty(t, doer.requests)
}

func TestUpdate(t *testing.T) {
	doer := &recordingDoer{response: `{"message":"updated","clinic_id":5,"integrations_assigned":0,"forms_assigned":0}`}
	svc := clinics.NewService(doer)

	_, err := svc.Update(context.Background(), 5, clinics.UpdateRequest{
		ClinicName: "North",
		Email:      "n@x.com",
		Details:    clinics.Details{Fax: "555-0199"},
	})
	require.NoError(t, err)

	req := doer.requests[0]
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, "/api/clinic/update-clinic/5", req.Path)
	_, order, files := formFields(t, req)
	require.Equal(t, []string{"clinic_name", "email", "fax"}, order)
	require.Empty(t, files)

	_, err = svc.Update(context.Background(), 5, clinics.UpdateRequest{ClinicName: "North"})
	require.ErrorIs(t, err, ierrors.ErrMissingField)
}

func TestErrorsPassThrough(t *testing.T) {
	expired := &auth.SessionExpiredError{Message: auth.SessionExpiredMessage}
	svc := clinics.NewService(&recordingDoer{err: expired})

	_, err := svc.List(context.Background())
	require.True(t, auth.IsSessionExpired(err))
}
