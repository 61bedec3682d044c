package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/middleware"
	"github.com/otcheredev/remedium-hms/internal/services"
)

// NewAPI builds the resource router mounted under /api/v1. Every route is
// gated by the permission for its resource and action.
func NewAPI(svc *services.Services, checker middleware.Checker) http.Handler {
	guard := func(resource, action string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(checker, authz.Codename(resource, action))
	}
	view := func(resource string) func(http.Handler) http.Handler {
		return guard(resource, authz.ActionView)
	}
	change := func(resource string) func(http.Handler) http.Handler {
		return guard(resource, authz.ActionChange)
	}

	r := chi.NewRouter()

	r.Route("/patients", func(r chi.Router) {
		r.With(view(authz.ResourcePatients)).Get("/admitted", listAction(svc.Patients.Admitted))
		r.With(change(authz.ResourcePatients)).Post("/{id}/discharge", itemAction("patient", svc.Patients.Discharge))
		NewResource(svc.Patients.PatientManager).Mount(r, authz.ResourcePatients, guard)
	})

	r.Route("/staff", func(r chi.Router) {
		r.With(view(authz.ResourceStaff)).Get("/medical", listAction(svc.Staff.Medical))
		r.With(view(authz.ResourceStaff)).Get("/by-department", staffByDepartment(svc.Staff))
		NewResource(svc.Staff.StaffManager).Mount(r, authz.ResourceStaff, guard)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.With(view(authz.ResourceAppointments)).Get("/scheduled", listAction(svc.Appointments.Scheduled))
		r.With(view(authz.ResourceAppointments)).Get("/upcoming", listAction(svc.Appointments.Upcoming))
		NewResource(svc.Appointments.AppointmentManager).Mount(r, authz.ResourceAppointments, guard)
	})

	r.Route("/invoices", func(r chi.Router) {
		r.With(view(authz.ResourceInvoices)).Get("/unpaid", listAction(svc.Invoices.Unpaid))
		r.With(view(authz.ResourceInvoices)).Get("/overdue", listAction(svc.Invoices.Overdue))
		r.With(change(authz.ResourceInvoices)).Post("/{id}/mark-paid", itemAction("invoice", svc.Invoices.MarkPaid))
		NewResource(svc.Invoices.InvoiceManager).Mount(r, authz.ResourceInvoices, guard)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.With(view(authz.ResourceInventory)).Get("/reorder", listAction(svc.Inventory.Reorder))
		r.With(view(authz.ResourceInventory)).Get("/expired", listAction(svc.Inventory.Expired))
		NewResource(svc.Inventory.InventoryManager).Mount(r, authz.ResourceInventory, guard)
	})

	r.Route("/reports", func(r chi.Router) {
		r.With(view(authz.ResourceReports)).Get("/{id}/download", reportDownload(svc.Reports))
		NewResource(svc.Reports.ReportManager).Mount(r, authz.ResourceReports, guard)
	})

	r.Route("/labtests", func(r chi.Router) {
		NewResource(svc.LabTests).Mount(r, authz.ResourceLabTests, guard)
	})
	r.Route("/prescriptions", func(r chi.Router) {
		NewResource(svc.Prescriptions).Mount(r, authz.ResourcePrescriptions, guard)
	})
	r.Route("/surgeries", func(r chi.Router) {
		NewResource(svc.Surgeries).Mount(r, authz.ResourceSurgeries, guard)
	})
	r.Route("/wards", func(r chi.Router) {
		NewResource(svc.Wards).Mount(r, authz.ResourceWards, guard)
	})
	r.Route("/rooms", func(r chi.Router) {
		NewResource(svc.Rooms).Mount(r, authz.ResourceRooms, guard)
	})
	r.Route("/care", func(r chi.Router) {
		NewResource(svc.Care).Mount(r, authz.ResourceCare, guard)
	})
	r.Route("/integrations", func(r chi.Router) {
		NewResource(svc.Integrations).Mount(r, authz.ResourceIntegrations, guard)
	})

	return r
}
