package normalize

import (
	"testing"
	"time"

	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+233201234567", "+233201234567"},
		{"0201234567", "0201234567"},
		{"555-555-5555", "+5555555555"},
		{"(020) 123 4567", "+0201234567"},
		{"n/a", "n/a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Phone(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Phone(got))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email(nil))
	assert.Nil(t, Email(ptr("   ")))
	assert.Equal(t, "jane@example.com", *Email(ptr("  Jane@Example.COM ")))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, models.GenderMale, Gender("Male"))
	assert.Equal(t, models.GenderFemale, Gender(" f "))
	assert.Equal(t, models.GenderMale, Gender(models.GenderMale))
	assert.Equal(t, models.Gender("X"), Gender("X"))

	assert.Equal(t, models.RoleLabTechnician, StaffRole("Lab Technician"))
	assert.Equal(t, models.RoleLabTechnician, StaffRole(models.RoleLabTechnician))
	assert.Equal(t, models.DeptGeneralMedicine, Department("General Medicine"))
	assert.Equal(t, models.DeptPharmacy, Department("Pharmacy"))
	assert.Equal(t, models.StatusCancelled, ScheduleStatus("canceled"))
	assert.Equal(t, models.CareUnderObservation, CareStatus("Under Observation"))
	assert.Equal(t, models.UnitMG, Unit("milligram"))
}

func TestTimestamp(t *testing.T) {
	accra := time.FixedZone("GMT+2", 2*3600)
	in := time.Date(2024, 6, 1, 11, 30, 0, 987, accra)

	got := Timestamp(in)
	assert.True(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC).Equal(got))
	assert.Zero(t, got.Nanosecond())
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, Timestamp(time.Time{}).IsZero())
	assert.Nil(t, OptionalTimestamp(nil))
}

func TestPatientIsIdempotent(t *testing.T) {
	p := &models.Patient{
		UniqueID:             " P-001 ",
		FirstName:            " Jane",
		LastName:             "Doe ",
		Gender:               "female",
		Phone:                "555-555-5555",
		Email:                ptr(" JANE@EXAMPLE.COM"),
		EmergencyContactName: ptr("  "),
	}

	Patient(p)
	assert.Equal(t, "P-001", p.UniqueID)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, models.GenderFemale, p.Gender)
	assert.Equal(t, "+5555555555", p.Phone)
	assert.Equal(t, "jane@example.com", *p.Email)
	assert.Nil(t, p.EmergencyContactName)

	once := *p
	Patient(p)
	assert.Equal(t, once, *p)
}

func TestStaffBlankDepartment(t *testing.T) {
	s := &models.Staff{Role: "Physician", Department: ptr(models.Department(" "))}
	Staff(s)
	assert.Equal(t, models.RoleDoctor, s.Role)
	assert.Nil(t, s.Department)

	s.Department = ptr(models.Department("cardiology"))
	Staff(s)
	assert.Equal(t, models.DeptCardiology, *s.Department)
}

func TestIntegration(t *testing.T) {
	synced := time.Date(2024, 6, 1, 11, 0, 0, 5, time.FixedZone("GMT+2", 2*3600))
	i := &models.ExternalIntegration{
		SystemName:  " LabLink ",
		APIEndpoint: " https://lab.example.com/api ",
		Status:      "active ",
		LastSync:    &synced,
		Notes:       ptr(""),
	}
	Integration(i)
	assert.Equal(t, "LabLink", i.SystemName)
	assert.Equal(t, "https://lab.example.com/api", i.APIEndpoint)
	assert.Equal(t, "active", i.Status)
	assert.True(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC).Equal(*i.LastSync))
	assert.Equal(t, time.UTC, i.LastSync.Location())
	assert.Nil(t, i.Notes)
}
