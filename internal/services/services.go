package services

import "github.com/otcheredev/remedium-hms/internal/repository"

// Services bundles one manager per entity.
type Services struct {
	Patients      *PatientService
	Staff         *StaffService
	Appointments  *AppointmentService
	Invoices      *InvoiceService
	Inventory     *InventoryService
	LabTests      *LabTestManager
	Prescriptions *PrescriptionManager
	Surgeries     *SurgeryManager
	Wards         *WardManager
	Rooms         *RoomManager
	Care          *CareManager
	Reports       *ReportService
	Integrations  *IntegrationManager
}

// New wires a manager over each gorm repository.
func New(stores *repository.Stores, deps Deps) *Services {
	return &Services{
		Patients:      NewPatientService(stores.Patients, deps),
		Staff:         NewStaffService(stores.Staff, deps),
		Appointments:  NewAppointmentService(stores.Appointments, deps),
		Invoices:      NewInvoiceService(stores.Invoices, deps),
		Inventory:     NewInventoryService(stores.Inventory, deps),
		LabTests:      NewLabTestManager(stores.LabTests, deps),
		Prescriptions: NewPrescriptionManager(stores.Prescriptions, deps),
		Surgeries:     NewSurgeryManager(stores.Surgeries, deps),
		Wards:         NewWardManager(stores.Wards, deps),
		Rooms:         NewRoomManager(stores.Rooms, deps),
		Care:          NewCareManager(stores.Care, deps),
		Reports:       NewReportService(stores.Reports, deps),
		Integrations:  NewIntegrationManager(stores.Integrations, deps),
	}
}
