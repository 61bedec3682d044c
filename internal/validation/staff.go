package validation

import (
	"fmt"
	"strings"

	"github.com/otcheredev/remedium-hms/internal/models"
)

// StaffRules validate a staff candidate.
var StaffRules = []Rule[models.Staff]{
	staffFields,
	staffDepartment,
	staffHireDate,
	staffUnique,
}

func staffFields(_ *Context, s *models.Staff, errs *Errors) error {
	requireText(errs, "staff_id", s.StaffID, 20)
	requireText(errs, "first_name", s.FirstName, 50)
	requireText(errs, "last_name", s.LastName, 50)
	if !s.Role.Valid() {
		errs.Add("role", invalidChoice(string(s.Role)))
	}
	if s.Department != nil && !s.Department.Valid() {
		errs.Add("department", invalidChoice(string(*s.Department)))
	}
	validPhone(errs, "phone", s.Phone)
	validEmail(errs, "email", s.Email)
	optionalMaxLength(errs, "email", s.Email, 254)
	return nil
}

// staffDepartment ties specialist roles to their department when one is set.
func staffDepartment(_ *Context, s *models.Staff, errs *Errors) error {
	if s.Department == nil || errs.Has("role") || errs.Has("department") {
		return nil
	}
	required, ok := models.RequiredDepartment[s.Role]
	if ok && *s.Department != required {
		errs.Add("department", fmt.Sprintf("Staff with role %s must belong to the %s department.",
			strings.ToLower(string(s.Role)), strings.ToLower(string(required))))
	}
	return nil
}

func staffHireDate(vc *Context, s *models.Staff, errs *Errors) error {
	orig, ok := vc.Original.(*models.Staff)
	if !ok || orig.HireDate == nil || orig.HireDate.IsZero() {
		return nil
	}
	if s.HireDate == nil || !s.HireDate.Equal(orig.HireDate.Time) {
		errs.Add("hire_date", "Hire date cannot be changed once set.")
	}
	return nil
}

func staffUnique(vc *Context, s *models.Staff, errs *Errors) error {
	if s.StaffID != "" {
		err := unique(vc, errs, "staff", "staff_id", map[string]any{"staff_id": s.StaffID}, s.ID,
			"A staff member with this staff id already exists.")
		if err != nil {
			return err
		}
	}
	if s.Email != nil && !errs.Has("email") {
		return unique(vc, errs, "staff", "email", map[string]any{"email": *s.Email}, s.ID,
			"A staff member with this email already exists.")
	}
	return nil
}
