package normalize

import (
	"strings"

	"github.com/otcheredev/remedium-hms/internal/models"
)

// Patient canonicalizes a patient in place.
func Patient(p *models.Patient) {
	p.UniqueID = Text(p.UniqueID)
	p.FirstName = Text(p.FirstName)
	p.LastName = Text(p.LastName)
	p.Gender = Gender(p.Gender)
	p.Phone = Phone(p.Phone)
	p.Email = Email(p.Email)
	p.EmergencyContactPhone = OptionalPhone(OptionalText(p.EmergencyContactPhone))
	p.EmergencyContactName = OptionalText(p.EmergencyContactName)
	p.InsuranceProvider = OptionalText(p.InsuranceProvider)
	p.AdmissionDate = OptionalTimestamp(p.AdmissionDate)
	p.DischargeDate = OptionalTimestamp(p.DischargeDate)
}

// Staff canonicalizes a staff member in place.
func Staff(s *models.Staff) {
	s.StaffID = Text(s.StaffID)
	s.FirstName = Text(s.FirstName)
	s.LastName = Text(s.LastName)
	s.Role = StaffRole(s.Role)
	if s.Department != nil {
		if strings.TrimSpace(string(*s.Department)) == "" {
			s.Department = nil
		} else {
			d := Department(*s.Department)
			s.Department = &d
		}
	}
	s.Phone = Phone(s.Phone)
	s.Email = Email(s.Email)
}

// Appointment canonicalizes an appointment in place.
func Appointment(a *models.Appointment) {
	a.AppointmentDate = Timestamp(a.AppointmentDate)
	a.Status = ScheduleStatus(a.Status)
	a.Reason = OptionalText(a.Reason)
}

// Invoice canonicalizes an invoice in place.
func Invoice(i *models.Invoice) {
	i.TotalAmount = i.TotalAmount.Round(2)
	i.Details = OptionalText(i.Details)
}

// InventoryItem canonicalizes a stock item in place.
func InventoryItem(i *models.InventoryItem) {
	i.Name = Text(i.Name)
	i.Category = Category(i.Category)
	i.Unit = Unit(i.Unit)
	i.Supplier = OptionalText(i.Supplier)
	if i.UnitCost.Valid {
		i.UnitCost.Decimal = i.UnitCost.Decimal.Round(2)
	}
}

// LabTest canonicalizes a lab test in place.
func LabTest(l *models.LabTest) {
	l.TestName = Text(l.TestName)
	l.Status = LabStatus(l.Status)
	l.RequestedDate = Timestamp(l.RequestedDate)
	l.ResultDate = OptionalTimestamp(l.ResultDate)
	l.Result = OptionalText(l.Result)
}

// Prescription canonicalizes a prescription in place.
func Prescription(p *models.Prescription) {
	p.DrugName = Text(p.DrugName)
	p.Dosage = Text(p.Dosage)
	p.Frequency = Text(p.Frequency)
	p.PrescribedDate = Timestamp(p.PrescribedDate)
	p.Notes = OptionalText(p.Notes)
}

// Surgery canonicalizes a surgery in place.
func Surgery(s *models.Surgery) {
	s.ScheduledDate = Timestamp(s.ScheduledDate)
	s.OperatingRoom = Text(s.OperatingRoom)
	s.Procedure = Text(s.Procedure)
	s.Status = ScheduleStatus(s.Status)
	s.Notes = OptionalText(s.Notes)
}

// Ward canonicalizes a ward in place.
func Ward(w *models.Ward) {
	w.Name = Text(w.Name)
}

// Room canonicalizes a room in place.
func Room(r *models.Room) {
	r.RoomNumber = Text(r.RoomNumber)
}

// PatientCare canonicalizes a care entry in place.
func PatientCare(c *models.PatientCare) {
	c.Status = CareStatus(c.Status)
	c.MonitoringDate = Timestamp(c.MonitoringDate)
	c.Notes = OptionalText(c.Notes)
}

// Report canonicalizes a report in place.
func Report(r *models.Report) {
	r.Title = Text(r.Title)
	r.ReportType = Text(r.ReportType)
}

// Integration canonicalizes an external integration in place.
func Integration(i *models.ExternalIntegration) {
	i.SystemName = Text(i.SystemName)
	i.APIEndpoint = Text(i.APIEndpoint)
	i.Status = Text(i.Status)
	i.LastSync = OptionalTimestamp(i.LastSync)
	i.Notes = OptionalText(i.Notes)
}
