package repository

import (
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/otcheredev/remedium-hms/internal/query"
	"gorm.io/gorm"
)

var (
	PatientSpec = query.Spec{
		SearchFields: []string{"patients.unique_id", "patients.first_name", "patients.last_name", "patients.email"},
		OrderFields: map[string]string{
			"last_name":      "patients.last_name",
			"first_name":     "patients.first_name",
			"unique_id":      "patients.unique_id",
			"date_of_birth":  "patients.date_of_birth",
			"admission_date": "patients.admission_date",
			"created_at":     "patients.created_at",
		},
		DefaultOrder: "-admission_date",
	}

	StaffSpec = query.Spec{
		SearchFields: []string{"staff.staff_id", "staff.first_name", "staff.last_name", "staff.email", "staff.role"},
		OrderFields: map[string]string{
			"first_name": "staff.first_name",
			"last_name":  "staff.last_name",
			"staff_id":   "staff.staff_id",
			"role":       "staff.role",
			"department": "staff.department",
			"hire_date":  "staff.hire_date",
		},
		DefaultOrder: "first_name",
	}

	AppointmentSpec = query.Spec{
		Joins: []string{
			"JOIN patients ON patients.id = appointments.patient_id",
			"JOIN staff ON staff.id = appointments.doctor_id",
		},
		SearchFields: []string{"patients.first_name", "patients.last_name", "staff.first_name"},
		OrderFields: map[string]string{
			"appointment_date": "appointments.appointment_date",
			"status":           "appointments.status",
			"created_at":       "appointments.created_at",
		},
		DefaultOrder: "-appointment_date",
	}

	InvoiceSpec = query.Spec{
		Joins:        []string{"JOIN patients ON patients.id = invoices.patient_id"},
		SearchFields: []string{"patients.unique_id", "patients.first_name", "patients.last_name"},
		OrderFields: map[string]string{
			"issue_date":   "invoices.issue_date",
			"due_date":     "invoices.due_date",
			"total_amount": "invoices.total_amount",
			"paid":         "invoices.paid",
		},
		DefaultOrder: "-issue_date",
	}

	InventorySpec = query.Spec{
		SearchFields: []string{"inventory_items.name", "inventory_items.category", "inventory_items.supplier"},
		OrderFields: map[string]string{
			"name":        "inventory_items.name",
			"category":    "inventory_items.category",
			"quantity":    "inventory_items.quantity",
			"expiry_date": "inventory_items.expiry_date",
		},
		DefaultOrder: "name",
	}

	LabTestSpec = query.Spec{
		Joins:        []string{"JOIN patients ON patients.id = lab_tests.patient_id"},
		SearchFields: []string{"lab_tests.test_name", "patients.first_name", "patients.last_name"},
		OrderFields: map[string]string{
			"requested_date": "lab_tests.requested_date",
			"result_date":    "lab_tests.result_date",
			"status":         "lab_tests.status",
			"test_name":      "lab_tests.test_name",
		},
		DefaultOrder: "-requested_date",
	}

	PrescriptionSpec = query.Spec{
		Joins:        []string{"JOIN patients ON patients.id = prescriptions.patient_id"},
		SearchFields: []string{"prescriptions.drug_name", "patients.first_name", "patients.last_name"},
		OrderFields: map[string]string{
			"prescribed_date": "prescriptions.prescribed_date",
			"drug_name":       "prescriptions.drug_name",
		},
		DefaultOrder: "-prescribed_date",
	}

	SurgerySpec = query.Spec{
		Joins:        []string{"JOIN patients ON patients.id = surgeries.patient_id"},
		SearchFields: []string{"surgeries.procedure", "surgeries.operating_room", "patients.first_name", "patients.last_name"},
		OrderFields: map[string]string{
			"scheduled_date": "surgeries.scheduled_date",
			"operating_room": "surgeries.operating_room",
			"status":         "surgeries.status",
		},
		DefaultOrder: "-scheduled_date",
	}

	WardSpec = query.Spec{
		SearchFields: []string{"wards.name"},
		OrderFields: map[string]string{
			"name":     "wards.name",
			"capacity": "wards.capacity",
		},
		DefaultOrder: "name",
	}

	RoomSpec = query.Spec{
		Joins:        []string{"JOIN wards ON wards.id = rooms.ward_id"},
		SearchFields: []string{"rooms.room_number", "wards.name"},
		OrderFields: map[string]string{
			"room_number": "rooms.room_number",
			"capacity":    "rooms.capacity",
			"ward":        "wards.name",
		},
		DefaultOrder: "room_number",
	}

	CareSpec = query.Spec{
		Joins:        []string{"JOIN patients ON patients.id = patient_care.patient_id"},
		SearchFields: []string{"patients.first_name", "patients.last_name", "patient_care.status"},
		OrderFields: map[string]string{
			"monitoring_date": "patient_care.monitoring_date",
			"status":          "patient_care.status",
		},
		DefaultOrder: "-monitoring_date",
	}

	IntegrationSpec = query.Spec{
		SearchFields: []string{"external_integrations.system_name", "external_integrations.status"},
		OrderFields: map[string]string{
			"system_name": "external_integrations.system_name",
			"status":      "external_integrations.status",
			"last_sync":   "external_integrations.last_sync",
		},
		DefaultOrder: "system_name",
	}

	ReportSpec = query.Spec{
		SearchFields: []string{"reports.title", "reports.report_type"},
		OrderFields: map[string]string{
			"title":       "reports.title",
			"report_type": "reports.report_type",
			"created_at":  "reports.created_at",
		},
		DefaultOrder: "-created_at",
	}
)

// Stores bundles the repository of every managed entity.
type Stores struct {
	Patients      *Repository[models.Patient]
	Staff         *Repository[models.Staff]
	Appointments  *Repository[models.Appointment]
	Invoices      *Repository[models.Invoice]
	Inventory     *Repository[models.InventoryItem]
	LabTests      *Repository[models.LabTest]
	Prescriptions *Repository[models.Prescription]
	Surgeries     *Repository[models.Surgery]
	Wards         *Repository[models.Ward]
	Rooms         *Repository[models.Room]
	Care          *Repository[models.PatientCare]
	Reports       *Repository[models.Report]
	Integrations  *Repository[models.ExternalIntegration]
}

// NewStores creates a repository per entity on db.
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Patients:      New[models.Patient](db, "patient", PatientSpec),
		Staff:         New[models.Staff](db, "staff", StaffSpec),
		Appointments:  New[models.Appointment](db, "appointment", AppointmentSpec),
		Invoices:      New[models.Invoice](db, "invoice", InvoiceSpec),
		Inventory:     New[models.InventoryItem](db, "inventory item", InventorySpec),
		LabTests:      New[models.LabTest](db, "lab test", LabTestSpec),
		Prescriptions: New[models.Prescription](db, "prescription", PrescriptionSpec),
		Surgeries:     New[models.Surgery](db, "surgery", SurgerySpec),
		Wards:         New[models.Ward](db, "ward", WardSpec),
		Rooms:         New[models.Room](db, "room", RoomSpec),
		Care:          New[models.PatientCare](db, "patient care", CareSpec),
		Reports:       New[models.Report](db, "report", ReportSpec),
		Integrations:  New[models.ExternalIntegration](db, "integration", IntegrationSpec),
	}
}
