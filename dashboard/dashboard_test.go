package dashboard_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suryanavv/ims/client"
	"github.com/suryanavv/ims/dashboard"
)

type cannedDoer struct {
	paths    []string
	response string
}

func (d *cannedDoer) DoJSON(_ context.Context, req client.Request, out interface{}) error {
	d.paths = append(d.paths, req.Path)
	return json.Unmarshal([]byte(d.response), out)
}

func TestAnalytics(t *testing.T) {
	doer := &cannedDoer{response: `{"total_clinics":12,"users_by_role":{"superadmin":2,"clinic_admin":10},
		"integrations":{"Google Calendar":5,"AR":3},"forms":{"I-693":4}}`}

	a, err := dashboard.NewService(doer).Analytics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, a.TotalClinics)
	require.Equal(t, 12, a.TotalUsers())
	require.Equal(t, 8, a.TotalIntegrations())
	require.Equal(t, 4, a.TotalForms())
	require.Equal(t, []string{dashboard.AnalyticsPath}, doer.paths)
}

func TestUserServicesNormalize(t *testing.T) {
	doer := &cannedDoer{response: `{
		"integrations":[
			{"integration_name":"Google Calendar","service_name":"ignored"},
			{"service_name":"Open Dental"},
			{"integration_id":3},
			{"integration_name":42,"service_name":"AR"}
		],
		"forms":[{"form_name":"I-693"},{"form_id":2}],
		"clinic":{"clinic_id":4}
	}`}

	us, err := dashboard.NewService(doer).UserServices(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{dashboard.UserServicesPath}, doer.paths)

	normalized := us.Normalize()
	require.Equal(t, []dashboard.NormalizedService{
		{Key: "google-calendar", OriginalName: "Google Calendar", Kind: dashboard.KindIntegration},
		{Key: "open-dental", OriginalName: "Open Dental", Kind: dashboard.KindIntegration},
		{Key: "ar", OriginalName: "AR", Kind: dashboard.KindIntegration},
		{Key: "i-693", OriginalName: "I-693", Kind: dashboard.KindForm},
	}, normalized)
	require.Equal(t, []string{"google-calendar", "open-dental", "ar", "i-693"}, dashboard.Keys(normalized))
}

func TestNormalizeEmpty(t *testing.T) {
	var us *dashboard.UserServices
	require.Empty(t, us.Normalize())
	require.Empty(t, (&dashboard.UserServices{}).Normalize())
}
