package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	ierrors "github.com/suryanavv/ims/internal/errors"
	"github.com/suryanavv/ims/internal/utils"
	"github.com/suryanavv/ims/users"
)

func TestProfileRoundTrip(t *testing.T) {
	p := &users.Profile{
		UserID:     7,
		Email:      "admin@clinic.test",
		Role:       users.RoleClinicAdmin,
		FirstName:  "Ada",
		LastName:   "Lee",
		ClinicID:   utils.Ptr(int64(12)),
		ClinicName: utils.Ptr("Northside"),
	}

	data, err := p.Marshal()
	require.NoError(t, err)
	require.Contains(t, data, `"clinic_id":12`)

	got, err := users.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.True(t, got.IsClinicAdmin())
	require.False(t, got.IsSuperAdmin())
	require.Equal(t, "Northside", got.ClinicLabel())
}

func TestUnmarshalRejectsCorruptData(t *testing.T) {
	_, err := users.Unmarshal("{not json")
	require.ErrorIs(t, err, ierrors.ErrCorruptProfile)

	_, err = users.Unmarshal("{}")
	require.ErrorIs(t, err, ierrors.ErrCorruptProfile)
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Ada Lee", (&users.Profile{FirstName: "Ada", LastName: "Lee"}).DisplayName())
	require.Equal(t, "a@x.com", (&users.Profile{Email: "a@x.com"}).DisplayName())
}

func TestHasRole(t *testing.T) {
	p := &users.Profile{Role: users.RoleSuperAdmin}
	require.True(t, p.HasRole(users.RoleClinicAdmin, users.RoleSuperAdmin))
	require.False(t, p.HasRole(users.RoleClinicAdmin))
	require.False(t, p.HasRole())

	future := &users.Profile{Role: "auditor"}
	require.False(t, future.HasRole(users.RoleSuperAdmin, users.RoleClinicAdmin))
}
