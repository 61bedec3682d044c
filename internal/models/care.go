package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PatientCare is one monitoring entry with optional vital signs.
type PatientCare struct {
	Model
	PatientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	Status           CareStatus `gorm:"type:varchar(30);not null;index" json:"status"`
	MonitoringDate   time.Time  `gorm:"not null;index" json:"monitoring_date"`
	Temperature      *float64   `gorm:"type:numeric(4,1)" json:"temperature,omitempty"`
	HeartRate        *int       `json:"heart_rate,omitempty"`
	Systolic         *int       `json:"systolic,omitempty"`
	Diastolic        *int       `json:"diastolic,omitempty"`
	RespiratoryRate  *int       `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int       `json:"oxygen_saturation,omitempty"`
	Weight           *float64   `gorm:"type:numeric(5,1)" json:"weight,omitempty"`
	Height           *float64   `gorm:"type:numeric(5,1)" json:"height,omitempty"`
	RecordedByID     *uuid.UUID `gorm:"type:uuid;index" json:"recorded_by,omitempty"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`

	Patient    *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	RecordedBy *Staff   `gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL" json:"-"`

	BMI               *float64 `gorm:"-" json:"bmi,omitempty"`
	HasCriticalVitals bool     `gorm:"-" json:"has_critical_vitals"`
}

// TableName overrides the table name
func (PatientCare) TableName() string {
	return "patient_care"
}

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Accepted measurement ranges; readings outside are rejected as input errors.
var (
	TemperatureRange      = Range{35.0, 45.0}
	HeartRateRange        = Range{30, 200}
	SystolicRange         = Range{50, 250}
	DiastolicRange        = Range{30, 150}
	RespiratoryRateRange  = Range{5, 60}
	OxygenSaturationRange = Range{50, 100}
	WeightRange           = Range{0.5, 500}
	HeightRange           = Range{30, 300}
)

// Readings inside these ranges are clinically normal enough not to flag.
var (
	safeTemperature      = Range{35.5, 39.4}
	safeHeartRate        = Range{40, 130}
	safeSystolic         = Range{90, 179}
	safeDiastolic        = Range{50, 119}
	safeRespiratoryRate  = Range{8, 30}
	safeOxygenSaturation = Range{90, 100}
)

// ComputeBMI returns weight / height² rounded to one decimal, or nil when
// either measurement is missing.
func (c *PatientCare) ComputeBMI() *float64 {
	if c.Weight == nil || c.Height == nil || *c.Height <= 0 {
		return nil
	}
	metres := *c.Height / 100
	bmi := math.Round(*c.Weight/(metres*metres)*10) / 10
	return &bmi
}

// CriticalVitals reports whether any present reading falls outside its safe range.
func (c *PatientCare) CriticalVitals() bool {
	outside := func(v *float64, r Range) bool { return v != nil && !r.Contains(*v) }
	outsideInt := func(v *int, r Range) bool { return v != nil && !r.Contains(float64(*v)) }

	return outside(c.Temperature, safeTemperature) ||
		outsideInt(c.HeartRate, safeHeartRate) ||
		outsideInt(c.Systolic, safeSystolic) ||
		outsideInt(c.Diastolic, safeDiastolic) ||
		outsideInt(c.RespiratoryRate, safeRespiratoryRate) ||
		outsideInt(c.OxygenSaturation, safeOxygenSaturation)
}

// Derive fills computed fields.
func (c *PatientCare) Derive(time.Time) {
	c.BMI = c.ComputeBMI()
	c.HasCriticalVitals = c.CriticalVitals()
}
