package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/normalize"
	"github.com/otcheredev/remedium-hms/internal/query"
	"github.com/otcheredev/remedium-hms/internal/validation"
)

// InvoiceTerm is the default number of days between issue and due date.
const InvoiceTerm = 30

type (
	PatientManager      = Manager[models.Patient, *models.Patient]
	StaffManager        = Manager[models.Staff, *models.Staff]
	AppointmentManager  = Manager[models.Appointment, *models.Appointment]
	InvoiceManager      = Manager[models.Invoice, *models.Invoice]
	InventoryManager    = Manager[models.InventoryItem, *models.InventoryItem]
	LabTestManager      = Manager[models.LabTest, *models.LabTest]
	PrescriptionManager = Manager[models.Prescription, *models.Prescription]
	SurgeryManager      = Manager[models.Surgery, *models.Surgery]
	WardManager         = Manager[models.Ward, *models.Ward]
	RoomManager         = Manager[models.Room, *models.Room]
	CareManager         = Manager[models.PatientCare, *models.PatientCare]
	ReportManager       = Manager[models.Report, *models.Report]
	IntegrationManager  = Manager[models.ExternalIntegration, *models.ExternalIntegration]
)

func fieldError(entity, field, msg string) error {
	fields := apperr.FieldErrors{}
	fields.Add(field, msg)
	return &apperr.ValidationError{Entity: entity, Fields: fields}
}

// PatientService manages patients.
type PatientService struct {
	*PatientManager
}

// NewPatientService creates a PatientService.
func NewPatientService(store Store[models.Patient], deps Deps) *PatientService {
	return &PatientService{NewManager[models.Patient, *models.Patient](Config[models.Patient]{
		Entity:    "patient",
		Normalize: normalize.Patient,
		Rules:     validation.PatientRules,
	}, store, deps)}
}

// Discharge stamps the discharge time of an admitted patient.
func (s *PatientService) Discharge(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	now := s.deps.now()
	return s.Update(ctx, id, func(p *models.Patient) error {
		if p.DischargeDate != nil {
			return fieldError("patient", "discharge_date", "Patient has already been discharged.")
		}
		p.DischargeDate = &now
		return nil
	})
}

// Admitted lists patients with an admission and no discharge.
func (s *PatientService) Admitted(ctx context.Context, p query.Params) (*query.Page[models.Patient], error) {
	return s.List(ctx, p, query.NotNull("patients.admission_date"), query.IsNull("patients.discharge_date"))
}

// StaffService manages staff members.
type StaffService struct {
	*StaffManager
}

// NewStaffService creates a StaffService.
func NewStaffService(store Store[models.Staff], deps Deps) *StaffService {
	return &StaffService{NewManager[models.Staff, *models.Staff](Config[models.Staff]{
		Entity:    "staff",
		Normalize: normalize.Staff,
		Rules:     validation.StaffRules,
		Blank:     func() *models.Staff { return &models.Staff{IsActive: true} },
	}, store, deps)}
}

// Medical lists staff whose role is clinical.
func (s *StaffService) Medical(ctx context.Context, p query.Params) (*query.Page[models.Staff], error) {
	var roles []string
	for _, r := range models.StaffRoles {
		if r.IsMedical() {
			roles = append(roles, string(r))
		}
	}
	return s.List(ctx, p, query.In("staff.role", roles))
}

// ByDepartment lists staff of one department. The department may be given
// as a code or a label.
func (s *StaffService) ByDepartment(ctx context.Context, department string, p query.Params) (*query.Page[models.Staff], error) {
	if strings.TrimSpace(department) == "" {
		return nil, fieldError("staff", "department", "Department parameter required")
	}
	dept := normalize.Department(models.Department(department))
	if !dept.Valid() {
		return nil, fieldError("staff", "department", "Unknown department.")
	}
	return s.List(ctx, p, query.Eq("staff.department", string(dept)))
}

// AppointmentService manages appointments.
type AppointmentService struct {
	*AppointmentManager
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(store Store[models.Appointment], deps Deps) *AppointmentService {
	return &AppointmentService{NewManager[models.Appointment, *models.Appointment](Config[models.Appointment]{
		Entity:    "appointment",
		Normalize: normalize.Appointment,
		Rules:     validation.AppointmentRules,
		Defaults: func(a *models.Appointment, _ time.Time) {
			if a.Status == "" {
				a.Status = models.StatusScheduled
			}
		},
	}, store, deps)}
}

// Scheduled lists appointments still in the scheduled state.
func (s *AppointmentService) Scheduled(ctx context.Context, p query.Params) (*query.Page[models.Appointment], error) {
	return s.List(ctx, p, query.Eq("appointments.status", string(models.StatusScheduled)))
}

// Upcoming lists scheduled appointments from now on, soonest first unless
// the caller orders otherwise.
func (s *AppointmentService) Upcoming(ctx context.Context, p query.Params) (*query.Page[models.Appointment], error) {
	if p.OrderBy == "" {
		p.OrderBy = "appointment_date"
	}
	return s.List(ctx, p,
		query.Gte("appointments.appointment_date", s.deps.now()),
		query.Eq("appointments.status", string(models.StatusScheduled)),
	)
}

// InvoiceService manages invoices.
type InvoiceService struct {
	*InvoiceManager
}

// NewInvoiceService creates an InvoiceService.
func NewInvoiceService(store Store[models.Invoice], deps Deps) *InvoiceService {
	return &InvoiceService{NewManager[models.Invoice, *models.Invoice](Config[models.Invoice]{
		Entity:    "invoice",
		Normalize: normalize.Invoice,
		Rules:     validation.InvoiceRules,
		Defaults: func(i *models.Invoice, now time.Time) {
			if i.IssueDate.IsZero() {
				i.IssueDate = models.DateOf(now)
			}
			if i.DueDate.IsZero() {
				i.DueDate = i.IssueDate.AddDays(InvoiceTerm)
			}
		},
	}, store, deps)}
}

// MarkPaid sets the paid flag. An invoice that is already paid is returned
// unchanged without a write.
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Paid {
		return inv, nil
	}
	return s.Update(ctx, id, func(i *models.Invoice) error {
		i.Paid = true
		return nil
	})
}

// Unpaid lists invoices not yet paid.
func (s *InvoiceService) Unpaid(ctx context.Context, p query.Params) (*query.Page[models.Invoice], error) {
	return s.List(ctx, p, query.Eq("invoices.paid", false))
}

// Overdue lists unpaid invoices whose due date has passed.
func (s *InvoiceService) Overdue(ctx context.Context, p query.Params) (*query.Page[models.Invoice], error) {
	today := models.DateOf(s.deps.now())
	return s.List(ctx, p, query.Eq("invoices.paid", false), query.Lt("invoices.due_date", today))
}

// InventoryService manages stock items.
type InventoryService struct {
	*InventoryManager
}

// NewInventoryService creates an InventoryService.
func NewInventoryService(store Store[models.InventoryItem], deps Deps) *InventoryService {
	return &InventoryService{NewManager[models.InventoryItem, *models.InventoryItem](Config[models.InventoryItem]{
		Entity:    "inventory item",
		Normalize: normalize.InventoryItem,
		Rules:     validation.InventoryRules,
	}, store, deps)}
}

// Reorder lists items at or below their reorder level.
func (s *InventoryService) Reorder(ctx context.Context, p query.Params) (*query.Page[models.InventoryItem], error) {
	return s.List(ctx, p, query.Lte("inventory_items.quantity", query.Column("inventory_items.reorder_level")))
}

// Expired lists items whose expiry date has passed.
func (s *InventoryService) Expired(ctx context.Context, p query.Params) (*query.Page[models.InventoryItem], error) {
	today := models.DateOf(s.deps.now())
	return s.List(ctx, p, query.Lt("inventory_items.expiry_date", today))
}

// ReportService manages stored reports.
type ReportService struct {
	*ReportManager
}

// NewReportService creates a ReportService.
func NewReportService(store Store[models.Report], deps Deps) *ReportService {
	return &ReportService{NewManager[models.Report, *models.Report](Config[models.Report]{
		Entity:    "report",
		Normalize: normalize.Report,
		Rules:     validation.ReportRules,
	}, store, deps)}
}

// Download returns the attachment name and payload of a report.
func (s *ReportService) Download(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return r.Filename(), []byte(r.Data), nil
}

// NewLabTestManager manages lab tests.
func NewLabTestManager(store Store[models.LabTest], deps Deps) *LabTestManager {
	return NewManager[models.LabTest, *models.LabTest](Config[models.LabTest]{
		Entity:    "lab test",
		Normalize: normalize.LabTest,
		Rules:     validation.LabTestRules,
		Defaults: func(l *models.LabTest, now time.Time) {
			if l.Status == "" {
				l.Status = models.LabRequested
			}
			if l.RequestedDate.IsZero() {
				l.RequestedDate = now
			}
		},
	}, store, deps)
}

// NewPrescriptionManager manages prescriptions.
func NewPrescriptionManager(store Store[models.Prescription], deps Deps) *PrescriptionManager {
	return NewManager[models.Prescription, *models.Prescription](Config[models.Prescription]{
		Entity:    "prescription",
		Normalize: normalize.Prescription,
		Rules:     validation.PrescriptionRules,
		Defaults: func(p *models.Prescription, now time.Time) {
			if p.PrescribedDate.IsZero() {
				p.PrescribedDate = now
			}
		},
	}, store, deps)
}

// NewSurgeryManager manages surgeries.
func NewSurgeryManager(store Store[models.Surgery], deps Deps) *SurgeryManager {
	return NewManager[models.Surgery, *models.Surgery](Config[models.Surgery]{
		Entity:    "surgery",
		Normalize: normalize.Surgery,
		Rules:     validation.SurgeryRules,
		Defaults: func(s *models.Surgery, _ time.Time) {
			if s.Status == "" {
				s.Status = models.StatusScheduled
			}
		},
	}, store, deps)
}

// NewWardManager manages wards.
func NewWardManager(store Store[models.Ward], deps Deps) *WardManager {
	return NewManager[models.Ward, *models.Ward](Config[models.Ward]{
		Entity:    "ward",
		Normalize: normalize.Ward,
		Rules:     validation.WardRules,
	}, store, deps)
}

// NewRoomManager manages rooms.
func NewRoomManager(store Store[models.Room], deps Deps) *RoomManager {
	return NewManager[models.Room, *models.Room](Config[models.Room]{
		Entity:    "room",
		Normalize: normalize.Room,
		Rules:     validation.RoomRules,
	}, store, deps)
}

// NewCareManager manages patient care entries.
func NewCareManager(store Store[models.PatientCare], deps Deps) *CareManager {
	return NewManager[models.PatientCare, *models.PatientCare](Config[models.PatientCare]{
		Entity:    "patient care",
		Normalize: normalize.PatientCare,
		Rules:     validation.CareRules,
		Defaults: func(c *models.PatientCare, now time.Time) {
			if c.MonitoringDate.IsZero() {
				c.MonitoringDate = now
			}
		},
	}, store, deps)
}

// NewIntegrationManager manages external integrations.
func NewIntegrationManager(store Store[models.ExternalIntegration], deps Deps) *IntegrationManager {
	return NewManager[models.ExternalIntegration, *models.ExternalIntegration](Config[models.ExternalIntegration]{
		Entity:    "integration",
		Normalize: normalize.Integration,
		Rules:     validation.IntegrationRules,
	}, store, deps)
}
