package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row map[string]any

// fakeLookup answers existence queries from in-memory rows.
type fakeLookup struct {
	rows map[string][]row
	err  error
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{rows: map[string][]row{}}
}

func (f *fakeLookup) add(table string, r row) uuid.UUID {
	id, ok := r["id"].(uuid.UUID)
	if !ok {
		id = uuid.New()
		r["id"] = id
	}
	f.rows[table] = append(f.rows[table], r)
	return id
}

func (f *fakeLookup) Exists(_ context.Context, table string, conds map[string]any, exclude uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.rows[table] {
		if exclude != uuid.Nil && r["id"] == exclude {
			continue
		}
		matched := true
		for k, v := range conds {
			if !sameValue(r[k], v) {
				matched = false
				break
			}
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func sameValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newContext(l Lookup) *Context {
	return &Context{Ctx: context.Background(), Now: testNow, Lookup: l}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validPatient() *models.Patient {
	return &models.Patient{
		UniqueID:    "P-001",
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: models.NewDate(1990, time.January, 1),
		Gender:      models.GenderFemale,
		Phone:       "+233201234567",
	}
}

func TestPatientRules(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add("patients", row{"unique_id": "P-TAKEN", "email": "taken@example.com"})
	wardID := lookup.add("wards", row{"name": "North"})
	otherWard := lookup.add("wards", row{"name": "South"})
	roomID := lookup.add("rooms", row{"ward_id": wardID, "room_number": "101"})

	admitted := testNow.Add(-48 * time.Hour)
	early := admitted.Add(-time.Hour)

	tests := []struct {
		name   string
		mutate func(p *models.Patient)
		field  string
	}{
		{"valid", func(*models.Patient) {}, ""},
		{"missing first name", func(p *models.Patient) { p.FirstName = "" }, "first_name"},
		{"future birth date", func(p *models.Patient) { p.DateOfBirth = models.NewDate(2030, time.January, 1) }, "date_of_birth"},
		{"unknown gender", func(p *models.Patient) { p.Gender = "Unknown" }, "gender"},
		{"bad phone", func(p *models.Patient) { p.Phone = "555" }, "phone"},
		{"bad email", func(p *models.Patient) { p.Email = strPtr("not-an-email") }, "email"},
		{"discharge without admission", func(p *models.Patient) { p.DischargeDate = &admitted }, "discharge_date"},
		{"discharge before admission", func(p *models.Patient) {
			p.AdmissionDate = &admitted
			p.DischargeDate = &early
		}, "discharge_date"},
		{"unknown ward", func(p *models.Patient) { id := uuid.New(); p.WardID = &id }, "ward_id"},
		{"room outside ward", func(p *models.Patient) {
			p.WardID = &otherWard
			p.RoomID = &roomID
		}, "room_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			errs, err := Validate(newContext(lookup), p, PatientRules)
			require.NoError(t, err)
			if tt.field == "" {
				assert.True(t, errs.Empty(), "unexpected errors: %v", errs.Fields())
				return
			}
			assert.True(t, errs.Has(tt.field), "expected error on %s, got %v", tt.field, errs.Fields())
		})
	}
}

func TestPatientUniqueness(t *testing.T) {
	lookup := newFakeLookup()
	existing := lookup.add("patients", row{"unique_id": "P-001", "email": "ama@example.com"})

	p := validPatient()
	p.Email = strPtr("ama@example.com")
	errs, err := Validate(newContext(lookup), p, PatientRules)
	require.NoError(t, err)

	var conflict *apperr.ConflictError
	require.ErrorAs(t, errs.Err("patient"), &conflict)
	assert.Contains(t, conflict.Fields, "unique_id")
	assert.Contains(t, conflict.Fields, "email")

	// An edit never conflicts with its own row.
	p.ID = existing
	errs, err = Validate(newContext(lookup), p, PatientRules)
	require.NoError(t, err)
	assert.NoError(t, errs.Err("patient"))
}

func TestErrMixesConflictAndValidation(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add("patients", row{"unique_id": "P-001"})

	p := validPatient()
	p.Phone = "abc"
	errs, err := Validate(newContext(lookup), p, PatientRules)
	require.NoError(t, err)

	var verr *apperr.ValidationError
	require.ErrorAs(t, errs.Err("patient"), &verr)
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "unique_id")
}

func TestLookupFailureAbortsValidation(t *testing.T) {
	lookup := newFakeLookup()
	lookup.err = errors.New("connection reset")

	_, err := Validate(newContext(lookup), validPatient(), PatientRules)
	assert.ErrorContains(t, err, "connection reset")
}

func TestStaffRules(t *testing.T) {
	pharmacy := models.DeptPharmacy
	surgery := models.DeptSurgery
	hired := models.NewDate(2020, time.March, 1)

	base := func() *models.Staff {
		return &models.Staff{
			StaffID:   "S-001",
			FirstName: "Kofi",
			LastName:  "Boateng",
			Role:      models.RolePharmacist,
			Phone:     "+233201234567",
			HireDate:  &hired,
		}
	}

	t.Run("department optional", func(t *testing.T) {
		errs, err := Validate(newContext(newFakeLookup()), base(), StaffRules)
		require.NoError(t, err)
		assert.True(t, errs.Empty())
	})

	t.Run("matching department", func(t *testing.T) {
		s := base()
		s.Department = &pharmacy
		errs, err := Validate(newContext(newFakeLookup()), s, StaffRules)
		require.NoError(t, err)
		assert.True(t, errs.Empty())
	})

	t.Run("wrong department", func(t *testing.T) {
		s := base()
		s.Department = &surgery
		errs, err := Validate(newContext(newFakeLookup()), s, StaffRules)
		require.NoError(t, err)
		assert.True(t, errs.Has("department"))
	})

	t.Run("hire date is immutable", func(t *testing.T) {
		vc := newContext(newFakeLookup())
		vc.Original = base()
		s := base()
		moved := models.NewDate(2021, time.March, 1)
		s.HireDate = &moved
		errs, err := Validate(vc, s, StaffRules)
		require.NoError(t, err)
		assert.True(t, errs.Has("hire_date"))
	})

	t.Run("hire date can be set once", func(t *testing.T) {
		vc := newContext(newFakeLookup())
		orig := base()
		orig.HireDate = nil
		vc.Original = orig
		errs, err := Validate(vc, base(), StaffRules)
		require.NoError(t, err)
		assert.True(t, errs.Empty())
	})
}

func TestAppointmentPastDate(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	doctorID := lookup.add("staff", row{})

	offsets := []time.Duration{-24 * time.Hour, -time.Second, 0, time.Second, 24 * time.Hour}
	for _, off := range offsets {
		a := &models.Appointment{
			PatientID:       patientID,
			DoctorID:        doctorID,
			AppointmentDate: testNow.Add(off),
			Status:          models.StatusScheduled,
		}
		errs, err := Validate(newContext(lookup), a, AppointmentRules)
		require.NoError(t, err)
		assert.Equal(t, off < 0, errs.Has("appointment_date"), "offset %s", off)
	}
}

func TestAppointmentUpdateKeepsPastSlot(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	doctorID := lookup.add("staff", row{})
	past := testNow.Add(-72 * time.Hour)

	orig := &models.Appointment{PatientID: patientID, DoctorID: doctorID, AppointmentDate: past, Status: models.StatusScheduled}
	edit := *orig
	edit.Status = models.StatusCompleted

	vc := newContext(lookup)
	vc.Original = orig
	errs, err := Validate(vc, &edit, AppointmentRules)
	require.NoError(t, err)
	assert.True(t, errs.Empty())

	moved := *orig
	moved.AppointmentDate = past.Add(-time.Hour)
	errs, err = Validate(vc, &moved, AppointmentRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("appointment_date"))
}

func TestAppointmentDoubleBooking(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	doctorID := lookup.add("staff", row{})
	slot := testNow.Add(24 * time.Hour)
	lookup.add("appointments", row{"patient_id": patientID, "doctor_id": doctorID, "appointment_date": slot})

	a := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: slot,
		Status:          models.StatusCancelled,
		Reason:          strPtr("different reason"),
	}
	errs, err := Validate(newContext(lookup), a, AppointmentRules)
	require.NoError(t, err)

	var conflict *apperr.ConflictError
	require.ErrorAs(t, errs.Err("appointment"), &conflict)
	assert.Contains(t, conflict.Fields, apperr.NonFieldKey)
}

func TestSurgeryOperatingRoomSlot(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	surgeonID := lookup.add("staff", row{})
	slot := testNow.Add(48 * time.Hour)
	lookup.add("surgeries", row{"operating_room": "OR-1", "scheduled_date": slot})

	s := &models.Surgery{
		PatientID:     patientID,
		SurgeonID:     surgeonID,
		ScheduledDate: slot,
		OperatingRoom: "OR-1",
		Procedure:     "Appendectomy",
		Status:        models.StatusScheduled,
	}
	errs, err := Validate(newContext(lookup), s, SurgeryRules)
	require.NoError(t, err)
	assert.True(t, errs.Has(apperr.NonFieldKey))

	s.OperatingRoom = "OR-2"
	errs, err = Validate(newContext(lookup), s, SurgeryRules)
	require.NoError(t, err)
	assert.True(t, errs.Empty())
}

func TestInvoiceRules(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	issue := models.NewDate(2024, time.June, 1)

	tests := []struct {
		amount  string
		due     models.Date
		invalid bool
	}{
		{"0", issue, false},
		{"150.50", issue.AddDays(30), false},
		{"-0.01", issue.AddDays(30), true},
		{"10", issue.AddDays(-1), true},
		{"-5", issue.AddDays(-1), true},
	}
	for _, tt := range tests {
		inv := &models.Invoice{
			PatientID:   patientID,
			IssueDate:   issue,
			DueDate:     tt.due,
			TotalAmount: decimal.RequireFromString(tt.amount),
		}
		errs, err := Validate(newContext(lookup), inv, InvoiceRules)
		require.NoError(t, err)
		assert.Equal(t, tt.invalid, !errs.Empty(), "amount %s due %s", tt.amount, tt.due)
	}
}

func TestInventoryRules(t *testing.T) {
	lookup := newFakeLookup()
	lookup.add("inventory_items", row{"name": "Gauze"})

	item := &models.InventoryItem{
		Name:     "Gauze",
		Category: models.CategorySupply,
		Quantity: -1,
		Unit:     models.UnitBox,
	}
	errs, err := Validate(newContext(lookup), item, InventoryRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("quantity"))

	item.Name = "Syringes"
	item.Quantity = 0
	item.ReorderLevel = 10
	errs, err = Validate(newContext(lookup), item, InventoryRules)
	require.NoError(t, err)
	assert.True(t, errs.Empty(), "stock below reorder level is allowed: %v", errs.Fields())
}

func TestLabTestCompletion(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	requested := testNow.Add(-time.Hour)

	l := &models.LabTest{
		PatientID:     patientID,
		TestName:      "CBC",
		RequestedDate: requested,
		Status:        models.LabCompleted,
	}
	errs, err := Validate(newContext(lookup), l, LabTestRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("result"))
	assert.True(t, errs.Has("result_date"))

	before := requested.Add(-time.Minute)
	l.Result = strPtr("normal")
	l.ResultDate = &before
	errs, err = Validate(newContext(lookup), l, LabTestRules)
	require.NoError(t, err)
	assert.False(t, errs.Has("result"))
	assert.True(t, errs.Has("result_date"))

	after := requested.Add(time.Minute)
	l.ResultDate = &after
	errs, err = Validate(newContext(lookup), l, LabTestRules)
	require.NoError(t, err)
	assert.True(t, errs.Empty())
}

func TestCareBloodPressure(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})

	pairs := []struct{ sys, dia int }{{120, 80}, {80, 80}, {79, 80}, {60, 40}}
	for _, p := range pairs {
		c := &models.PatientCare{
			PatientID:      patientID,
			Status:         models.CareStable,
			MonitoringDate: testNow,
			Systolic:       intPtr(p.sys),
			Diastolic:      intPtr(p.dia),
		}
		errs, err := Validate(newContext(lookup), c, CareRules)
		require.NoError(t, err)
		assert.Equal(t, p.sys <= p.dia, errs.Has(apperr.NonFieldKey), "systolic %d diastolic %d", p.sys, p.dia)
	}
}

func TestCareVitalRanges(t *testing.T) {
	lookup := newFakeLookup()
	patientID := lookup.add("patients", row{})
	hot := 45.1
	c := &models.PatientCare{
		PatientID:      patientID,
		Status:         models.CareCritical,
		MonitoringDate: testNow,
		Temperature:    &hot,
		HeartRate:      intPtr(29),
	}
	errs, err := Validate(newContext(lookup), c, CareRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("temperature"))
	assert.True(t, errs.Has("heart_rate"))
}

func TestRoomRules(t *testing.T) {
	lookup := newFakeLookup()
	wardID := lookup.add("wards", row{"name": "North"})
	lookup.add("rooms", row{"ward_id": wardID, "room_number": "101"})

	r := &models.Room{WardID: wardID, RoomNumber: "", Capacity: 2}
	errs, err := Validate(newContext(lookup), r, RoomRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("room_number"))

	r.RoomNumber = "101"
	errs, err = Validate(newContext(lookup), r, RoomRules)
	require.NoError(t, err)
	var conflict *apperr.ConflictError
	assert.ErrorAs(t, errs.Err("room"), &conflict)

	r.RoomNumber = "102"
	r.Capacity = 0
	errs, err = Validate(newContext(lookup), r, RoomRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("capacity"))
}

func TestWardRules(t *testing.T) {
	errs, err := Validate(newContext(newFakeLookup()), &models.Ward{Name: "East", Capacity: 0}, WardRules)
	require.NoError(t, err)
	assert.True(t, errs.Has("capacity"))
}

func TestIntegrationRules(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		valid    bool
	}{
		{"https", "https://lab.example.com/api/v2", true},
		{"http with port", "http://10.0.0.5:8080/sync", true},
		{"missing scheme", "lab.example.com/api", false},
		{"ftp", "ftp://files.example.com", false},
		{"blank", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &models.ExternalIntegration{SystemName: "LabLink", Status: "active", APIEndpoint: tt.endpoint}
			errs, err := Validate(newContext(newFakeLookup()), i, IntegrationRules)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, !errs.Has("api_endpoint"))
		})
	}

	errs, err := Validate(newContext(newFakeLookup()), &models.ExternalIntegration{APIEndpoint: "https://x.example.com"}, IntegrationRules)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"system_name", "status"}, errs.Fields().Fields())
}
