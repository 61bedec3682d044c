package validation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/normalize"
)

// PatientRules validate a patient candidate.
var PatientRules = []Rule[models.Patient]{
	patientFields,
	patientAdmission,
	patientPlacement,
	patientUnique,
}

func patientFields(vc *Context, p *models.Patient, errs *Errors) error {
	requireText(errs, "unique_id", p.UniqueID, 20)
	requireText(errs, "first_name", p.FirstName, 50)
	requireText(errs, "last_name", p.LastName, 50)

	switch {
	case p.DateOfBirth.IsZero():
		errs.Add("date_of_birth", "This field is required.")
	case p.DateOfBirth.After(vc.Today()):
		errs.Add("date_of_birth", "Date of birth cannot be in the future.")
	}

	if !p.Gender.Valid() {
		errs.Add("gender", invalidChoice(string(p.Gender)))
	}
	validPhone(errs, "phone", p.Phone)
	if p.EmergencyContactPhone != nil {
		validPhone(errs, "emergency_contact_phone", *p.EmergencyContactPhone)
	}
	validEmail(errs, "email", p.Email)
	optionalMaxLength(errs, "email", p.Email, 254)
	optionalMaxLength(errs, "insurance_provider", p.InsuranceProvider, 100)
	optionalMaxLength(errs, "emergency_contact_name", p.EmergencyContactName, 100)
	return nil
}

func patientAdmission(_ *Context, p *models.Patient, errs *Errors) error {
	if p.DischargeDate == nil {
		return nil
	}
	if p.AdmissionDate == nil {
		errs.Add("discharge_date", "Discharge date requires an admission date.")
		return nil
	}
	if p.DischargeDate.Before(*p.AdmissionDate) {
		errs.Add("discharge_date", "Discharge date cannot be before admission date.")
	}
	return nil
}

func patientPlacement(vc *Context, p *models.Patient, errs *Errors) error {
	if err := optionalReference(vc, errs, "wards", "ward_id", p.WardID, "ward"); err != nil {
		return err
	}
	if err := optionalReference(vc, errs, "rooms", "room_id", p.RoomID, "room"); err != nil {
		return err
	}
	if p.WardID == nil || p.RoomID == nil || errs.Has("ward_id") || errs.Has("room_id") {
		return nil
	}
	inWard, err := vc.Lookup.Exists(vc.Ctx, "rooms", map[string]any{"id": *p.RoomID, "ward_id": *p.WardID}, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to resolve room ward: %w", err)
	}
	if !inWard {
		errs.Add("room_id", "Room does not belong to the selected ward.")
	}
	return nil
}

func patientUnique(vc *Context, p *models.Patient, errs *Errors) error {
	if p.UniqueID != "" {
		err := unique(vc, errs, "patients", "unique_id", map[string]any{"unique_id": p.UniqueID}, p.ID,
			"A patient with this unique id already exists.")
		if err != nil {
			return err
		}
	}
	if p.Email != nil && !errs.Has("email") {
		return unique(vc, errs, "patients", "email", map[string]any{"email": *p.Email}, p.ID,
			"A patient with this email already exists.")
	}
	return nil
}

func validPhone(errs *Errors, field, phone string) {
	if phone == "" {
		errs.Add(field, "This field is required.")
		return
	}
	if !normalize.PhonePattern.MatchString(phone) {
		errs.Add(field, "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed.")
	}
}

func invalidChoice(v string) string {
	return fmt.Sprintf("%q is not a valid choice.", v)
}
