package validation

import (
	"net/url"

	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
)

// WardRules validate a ward candidate.
var WardRules = []Rule[models.Ward]{
	wardFields,
}

// RoomRules validate a room candidate.
var RoomRules = []Rule[models.Room]{
	roomFields,
}

// ReportRules validate a stored report.
var ReportRules = []Rule[models.Report]{
	reportFields,
}

// IntegrationRules validate an external integration.
var IntegrationRules = []Rule[models.ExternalIntegration]{
	integrationFields,
}

func wardFields(vc *Context, w *models.Ward, errs *Errors) error {
	requireText(errs, "name", w.Name, 50)
	if w.Capacity <= 0 {
		errs.Add("capacity", "Capacity must be a positive number.")
	}
	if errs.Has("name") {
		return nil
	}
	return unique(vc, errs, "wards", "name", map[string]any{"name": w.Name}, w.ID,
		"A ward with this name already exists.")
}

func roomFields(vc *Context, r *models.Room, errs *Errors) error {
	if err := reference(vc, errs, "wards", "ward_id", r.WardID, "ward"); err != nil {
		return err
	}
	if r.RoomNumber == "" {
		errs.Add("room_number", "Room number cannot be empty.")
	} else {
		maxLength(errs, "room_number", r.RoomNumber, 20)
	}
	if r.Capacity <= 0 {
		errs.Add("capacity", "Capacity must be a positive number.")
	}
	if errs.Has("ward_id") || errs.Has("room_number") {
		return nil
	}
	return unique(vc, errs, "rooms", apperr.NonFieldKey,
		map[string]any{"ward_id": r.WardID, "room_number": r.RoomNumber}, r.ID,
		"A room with this number already exists in this ward.")
}

func reportFields(_ *Context, r *models.Report, errs *Errors) error {
	requireText(errs, "title", r.Title, 100)
	requireText(errs, "report_type", r.ReportType, 50)
	return nil
}

func integrationFields(_ *Context, i *models.ExternalIntegration, errs *Errors) error {
	requireText(errs, "system_name", i.SystemName, 100)
	requireText(errs, "status", i.Status, 50)
	requireText(errs, "api_endpoint", i.APIEndpoint, 200)
	if errs.Has("api_endpoint") {
		return nil
	}
	u, err := url.ParseRequestURI(i.APIEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add("api_endpoint", "Enter a valid URL.")
	}
	return nil
}
