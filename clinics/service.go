package clinics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/suryanavv/ims/apimodel"
	"github.com/suryanavv/ims/client"
	"github.com/suryanavv/ims/internal/utils"
)

const basePath = "/api/clinic"

// Doer is the part of client.Client the domain services need.
type Doer interface {
	DoJSON(ctx context.Context, req client.Request, out interface{}) error
}

var _ Repo = (*Service)(nil)

// Service implements Repo over the backend REST API.
type Service struct {
	client Doer
}

func NewService(c Doer) *Service {
	return &Service{client: c}
}

func (s *Service) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := s.client.DoJSON(ctx, client.Get(basePath+"/clinics", nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Get(ctx context.Context, clinicID int64) (*Detail, error) {
	var out Detail
	if err := s.client.DoJSON(ctx, client.Get(basePath+"/clinic/"+id(clinicID), nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "[clinics.Create]")
	}

	form := client.NewForm().
		Set("full_name", req.FullName).
		Set("email", req.Email).
		Set("clinic_name", req.ClinicName).
		Set("phone", req.Phone).
		Set("mobile_number", req.MobileNumber)
	if err := req.Details.apply(form); err != nil {
		return nil, errors.Wrap(err, "[clinics.Create]")
	}
	attachLogo(form, req.Logo)

	httpReq, err := client.MultipartRequest(http.MethodPost, basePath+"/create-clinic", form)
	if err != nil {
		return nil, err
	}

	var out CreateResponse
	if err := s.client.DoJSON(ctx, httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, clinicID int64, req UpdateRequest) (*UpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, "[clinics.Update]")
	}

	form := client.NewForm().
		Set("clinic_name", req.ClinicName).
		Set("email", req.Email).
		SetIfNotEmpty("phone", req.Phone)
	if err := req.Details.apply(form); err != nil {
		return nil, errors.Wrap(err, "[clinics.Update]")
	}
	attachLogo(form, req.Logo)

	httpReq, err := client.MultipartRequest(http.MethodPut, basePath+"/update-clinic/"+id(clinicID), form)
	if err != nil {
		return nil, err
	}

	var out UpdateResponse
	if err := s.client.DoJSON(ctx, httpReq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, clinicID int64) (*apimodel.MessageResponse, error) {
	var out apimodel.MessageResponse
	req := client.Request{Method: http.MethodDelete, Path: basePath + "/delete-clinic/" + id(clinicID)}
	if err := s.client.DoJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) ResendOnboarding(ctx context.Context, userID int64) (*apimodel.MessageResponse, error) {
	var out apimodel.MessageResponse
	req := client.Request{Method: http.MethodPost, Path: basePath + "/resend-onboarding/" + id(userID)}
	if err := s.client.DoJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// apply adds the non-empty optional fields in the order the backend documents them.
func (d Details) apply(form *client.Form) error {
	schedule, err := d.Schedule.Encode()
	if err != nil {
		return errors.Wrap(err, "encode schedule")
	}

	form.SetIfNotEmpty("address_street", d.AddressStreet).
		SetIfNotEmpty("address_city", d.AddressCity).
		SetIfNotEmpty("address_state", d.AddressState).
		SetIfNotEmpty("address_zip", d.AddressZip).
		SetIfNotEmpty("fax", d.Fax).
		SetIfNotEmpty("website_url", d.WebsiteURL).
		SetIfNotEmpty("csid", d.CSID).
		SetIfNotEmpty("integration_access", utils.JoinInt64s(d.IntegrationAccess)).
		SetIfNotEmpty("form_access", utils.JoinInt64s(d.FormAccess)).
		SetIfNotEmpty("twilio_numbers", d.TwilioNumbers).
		SetIfNotEmpty("developer_api_keys", d.DeveloperAPIKeys).
		SetIfNotEmpty("shepherd_provider_names", d.ShepherdProviderNames).
		SetIfNotEmpty("shepherd_clinic_ids", d.ShepherdClinicIDs).
		SetIfNotEmpty("clinic_schedule", schedule)
	return nil
}

func attachLogo(form *client.Form, logo *Logo) {
	if logo == nil {
		return
	}
	form.SetFile("file", logo.Filename, logo.Content)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
