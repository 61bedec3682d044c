package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.June, 1)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01T23:10:00Z"`), &parsed))
	assert.Equal(t, d, parsed)

	require.NoError(t, json.Unmarshal([]byte(`null`), &parsed))
	assert.True(t, parsed.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-06-01T00:00:00Z"))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := NewDate(2024, time.June, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", v)
}

func TestComputeBMI(t *testing.T) {
	weight, height := 70.0, 175.0
	c := &PatientCare{Weight: &weight, Height: &height}
	require.NotNil(t, c.ComputeBMI())
	assert.Equal(t, 22.9, *c.ComputeBMI())

	c.Height = nil
	assert.Nil(t, c.ComputeBMI())
}

func TestCriticalVitals(t *testing.T) {
	normal, low := 98, 85
	c := &PatientCare{OxygenSaturation: &normal}
	assert.False(t, c.CriticalVitals())

	c.OxygenSaturation = &low
	c.Derive(time.Now())
	assert.True(t, c.HasCriticalVitals)

	assert.False(t, (&PatientCare{}).CriticalVitals())
}

func TestInventoryDerive(t *testing.T) {
	expiry := NewDate(2024, time.May, 31)
	item := &InventoryItem{Quantity: 10, ReorderLevel: 10, ExpiryDate: &expiry}
	item.Derive(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	assert.True(t, item.NeedsReorder)
	assert.True(t, item.IsExpired)

	item.Quantity = 11
	assert.False(t, item.BelowReorderLevel())
	assert.False(t, item.Expired(expiry))
}

func TestInvoiceOverdue(t *testing.T) {
	inv := &Invoice{
		IssueDate:   NewDate(2024, time.May, 1),
		DueDate:     NewDate(2024, time.May, 31),
		TotalAmount: decimal.RequireFromString("120.50"),
	}
	today := NewDate(2024, time.June, 1)
	assert.True(t, inv.Overdue(today))
	assert.False(t, inv.Overdue(inv.DueDate))

	inv.Paid = true
	assert.False(t, inv.Overdue(today))
}

func TestPatientAdmitted(t *testing.T) {
	admitted := time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)
	p := &Patient{AdmissionDate: &admitted}
	p.Derive(time.Now())
	assert.True(t, p.IsAdmitted)

	discharged := admitted.Add(48 * time.Hour)
	p.DischargeDate = &discharged
	assert.False(t, p.Admitted())
}

func TestReportFilename(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"Q1 / Admissions", "Q1 _ Admissions.txt"},
		{"Monthly report", "Monthly report.txt"},
		{"...", "report.txt"},
		{"", "report.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&Report{Title: tt.title}).Filename(), tt.title)
	}
}

func TestStaffIsMedical(t *testing.T) {
	s := &Staff{Role: RoleNurse}
	s.Derive(time.Now())
	assert.True(t, s.IsMedicalStaff)
	assert.False(t, RolePharmacist.IsMedical())
	assert.False(t, StaffRole("JANITOR").Valid())
}
