package validation

import (
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
)

// AppointmentRules validate an appointment candidate.
var AppointmentRules = []Rule[models.Appointment]{
	appointmentFields,
	appointmentNotPast,
	appointmentSlot,
}

// SurgeryRules validate a surgery candidate.
var SurgeryRules = []Rule[models.Surgery]{
	surgeryFields,
	surgeryRoomSlot,
}

func appointmentFields(vc *Context, a *models.Appointment, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", a.PatientID, "patient"); err != nil {
		return err
	}
	if err := reference(vc, errs, "staff", "doctor_id", a.DoctorID, "doctor"); err != nil {
		return err
	}
	if !a.Status.Valid() {
		errs.Add("status", invalidChoice(string(a.Status)))
	}
	return nil
}

// appointmentNotPast rejects slots before Now. An update that keeps the
// stored slot is exempt so past visits can still be closed out.
func appointmentNotPast(vc *Context, a *models.Appointment, errs *Errors) error {
	if a.AppointmentDate.IsZero() {
		errs.Add("appointment_date", "This field is required.")
		return nil
	}
	if orig, ok := vc.Original.(*models.Appointment); ok && orig.AppointmentDate.Equal(a.AppointmentDate) {
		return nil
	}
	if a.AppointmentDate.Before(vc.Now) {
		errs.Add("appointment_date", "Appointment date cannot be in the past.")
	}
	return nil
}

func appointmentSlot(vc *Context, a *models.Appointment, errs *Errors) error {
	if errs.Has("patient_id") || errs.Has("doctor_id") || a.AppointmentDate.IsZero() {
		return nil
	}
	conds := map[string]any{
		"patient_id":       a.PatientID,
		"doctor_id":        a.DoctorID,
		"appointment_date": a.AppointmentDate,
	}
	return unique(vc, errs, "appointments", apperr.NonFieldKey, conds, a.ID,
		"This doctor is already booked for this patient at this time slot.")
}

func surgeryFields(vc *Context, s *models.Surgery, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", s.PatientID, "patient"); err != nil {
		return err
	}
	if err := reference(vc, errs, "staff", "surgeon_id", s.SurgeonID, "surgeon"); err != nil {
		return err
	}
	if s.ScheduledDate.IsZero() {
		errs.Add("scheduled_date", "This field is required.")
	}
	requireText(errs, "operating_room", s.OperatingRoom, 50)
	requireText(errs, "procedure", s.Procedure, 100)
	if !s.Status.Valid() {
		errs.Add("status", invalidChoice(string(s.Status)))
	}
	return nil
}

func surgeryRoomSlot(vc *Context, s *models.Surgery, errs *Errors) error {
	if errs.Has("operating_room") || errs.Has("scheduled_date") {
		return nil
	}
	conds := map[string]any{
		"operating_room": s.OperatingRoom,
		"scheduled_date": s.ScheduledDate,
	}
	return unique(vc, errs, "surgeries", apperr.NonFieldKey, conds, s.ID,
		"This operating room is already booked for this time.")
}
