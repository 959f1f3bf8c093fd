package clinics_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/suryanavv/ims/clinics"
	ierrors "github.com/suryanavv/ims/internal/errors"
)

// ClinicRequestSuite tests request validation and the clinic model helpers.
type ClinicRequestSuite struct {
	suite.Suite
}

func TestClinicRequestSuite(t *testing.T) {
	suite.Run(t, new(ClinicRequestSuite))
}

func (s *ClinicRequestSuite) validCreate() clinics.CreateRequest {
	return clinics.CreateRequest{
		FullName:     "Ada Lee",
		Email:        "ada@northside.test",
		ClinicName:   "Northside",
		Phone:        "555-0100",
		MobileNumber: "555-0101",
	}
}

func (s *ClinicRequestSuite) TestCreateValidation() {
	s.Run("valid request passes", func() {
		req := s.validCreate()
		s.NoError(req.Validate())
	})

	s.Run("whitespace counts as missing", func() {
		req := s.validCreate()
		req.Phone = "   "
		err := req.Validate()
		s.Require().ErrorIs(err, ierrors.ErrMissingField)
		s.Equal("phone: required field missing", err.Error())
	})

	s.Run("schedule is validated", func() {
		req := s.validCreate()
		req.Schedule = clinics.Schedule{"Monday": {Open: "17:00", Close: "09:00"}}
		s.ErrorIs(req.Validate(), ierrors.ErrInvalidSchedule)
	})
}

func (s *ClinicRequestSuite) TestUpdateValidation() {
	s.Run("name and email required", func() {
		req := clinics.UpdateRequest{}
		err := req.Validate()
		s.Require().ErrorIs(err, ierrors.ErrMissingField)
		s.Contains(err.Error(), "clinic_name, email")
	})

	s.Run("phone optional", func() {
		req := clinics.UpdateRequest{ClinicName: "Northside", Email: "n@x.test"}
		s.NoError(req.Validate())
	})
}

func (s *ClinicRequestSuite) TestSchedule() {
	s.NoError(clinics.Schedule{"Friday": {Open: "08:30", Close: "12:00"}}.Validate())
	s.NoError(clinics.Schedule{"Sunday": {Closed: true}}.Validate())
	s.ErrorIs(clinics.Schedule{"Friday": {Open: "12:00", Close: "08:30"}}.Validate(), ierrors.ErrInvalidSchedule)
	s.ErrorIs(clinics.Schedule{"Friday": {Open: "9am", Close: "5pm"}}.Validate(), ierrors.ErrInvalidSchedule)
	s.ErrorIs(clinics.Schedule{"Funday": {Open: "09:00", Close: "10:00"}}.Validate(), ierrors.ErrInvalidSchedule)

	encoded, err := clinics.Schedule(nil).Encode()
	s.NoError(err)
	s.Empty(encoded)

	encoded, err = clinics.Schedule{"Monday": {Open: "09:00", Close: "17:00"}}.Encode()
	s.NoError(err)
	s.JSONEq(`{"Monday":{"open":"09:00","close":"17:00"}}`, encoded)
}

func (s *ClinicRequestSuite) TestAssignedIDs() {
	c := clinics.Clinic{
		Integrations: []clinics.Integration{{IntegrationID: 1}, {IntegrationID: 3}},
		Forms:        []clinics.Form{{FormID: 7}},
	}
	s.Equal([]int64{1, 3}, c.IntegrationIDs())
	s.Equal([]int64{7}, c.FormIDs())
	s.Empty((&clinics.Clinic{}).FormIDs())
}
