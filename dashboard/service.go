package dashboard

import (
	"context"

	"github.com/suryanavv/ims/client"
)

// Dashboard endpoints
const (
	AnalyticsPath    = "/api/dashboard/analytics"
	UserServicesPath = "/api/dashboard/user-services"
)

// Repo is the dashboard API.
type Repo interface {
	Analytics(ctx context.Context) (*Analytics, error)
	UserServices(ctx context.Context) (*UserServices, error)
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

func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := s.client.DoJSON(ctx, client.Get(AnalyticsPath, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) UserServices(ctx context.Context) (*UserServices, error) {
	var out UserServices
	if err := s.client.DoJSON(ctx, client.Get(UserServicesPath, nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
