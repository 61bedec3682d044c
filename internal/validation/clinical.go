package validation

import (
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
)

// LabTestRules validate a lab test candidate.
var LabTestRules = []Rule[models.LabTest]{
	labTestFields,
	labTestResult,
}

// PrescriptionRules validate a prescription candidate.
var PrescriptionRules = []Rule[models.Prescription]{
	prescriptionFields,
}

// CareRules validate a patient care entry.
var CareRules = []Rule[models.PatientCare]{
	careFields,
	careVitals,
}

func labTestFields(vc *Context, l *models.LabTest, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", l.PatientID, "patient"); err != nil {
		return err
	}
	requireText(errs, "test_name", l.TestName, 100)
	if l.RequestedDate.IsZero() {
		errs.Add("requested_date", "This field is required.")
	}
	if !l.Status.Valid() {
		errs.Add("status", invalidChoice(string(l.Status)))
	}
	return nil
}

// labTestResult requires the result fields once the test is completed.
func labTestResult(_ *Context, l *models.LabTest, errs *Errors) error {
	if l.Status == models.LabCompleted {
		if l.Result == nil {
			errs.Add("result", "Result is required when the test is completed.")
		}
		if l.ResultDate == nil {
			errs.Add("result_date", "Result date is required when the test is completed.")
		}
	}
	if l.ResultDate != nil && !l.RequestedDate.IsZero() && l.ResultDate.Before(l.RequestedDate) {
		errs.Add("result_date", "Result date cannot be before requested date.")
	}
	return nil
}

func prescriptionFields(vc *Context, p *models.Prescription, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", p.PatientID, "patient"); err != nil {
		return err
	}
	if err := optionalReference(vc, errs, "staff", "prescribed_by", p.PrescribedByID, "staff member"); err != nil {
		return err
	}
	requireText(errs, "drug_name", p.DrugName, 100)
	requireText(errs, "dosage", p.Dosage, 50)
	requireText(errs, "frequency", p.Frequency, 50)
	if p.PrescribedDate.IsZero() {
		errs.Add("prescribed_date", "This field is required.")
	}
	return nil
}

func careFields(vc *Context, c *models.PatientCare, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", c.PatientID, "patient"); err != nil {
		return err
	}
	if err := optionalReference(vc, errs, "staff", "recorded_by", c.RecordedByID, "staff member"); err != nil {
		return err
	}
	if !c.Status.Valid() {
		errs.Add("status", invalidChoice(string(c.Status)))
	}
	if c.MonitoringDate.IsZero() {
		errs.Add("monitoring_date", "This field is required.")
	}
	return nil
}

func careVitals(_ *Context, c *models.PatientCare, errs *Errors) error {
	inRange(errs, "temperature", c.Temperature, models.TemperatureRange, " °C")
	intInRange(errs, "heart_rate", c.HeartRate, models.HeartRateRange, " bpm")
	intInRange(errs, "systolic", c.Systolic, models.SystolicRange, " mmHg")
	intInRange(errs, "diastolic", c.Diastolic, models.DiastolicRange, " mmHg")
	intInRange(errs, "respiratory_rate", c.RespiratoryRate, models.RespiratoryRateRange, " breaths/min")
	intInRange(errs, "oxygen_saturation", c.OxygenSaturation, models.OxygenSaturationRange, "%")
	inRange(errs, "weight", c.Weight, models.WeightRange, " kg")
	inRange(errs, "height", c.Height, models.HeightRange, " cm")

	if c.Systolic != nil && c.Diastolic != nil && *c.Systolic <= *c.Diastolic {
		errs.Add(apperr.NonFieldKey, "Systolic pressure must be greater than diastolic pressure.")
	}
	return nil
}
