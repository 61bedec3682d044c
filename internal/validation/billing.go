package validation

import (
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits numeric(10,2).
var maxAmount = decimal.New(1, 8)

// InvoiceRules validate an invoice candidate.
var InvoiceRules = []Rule[models.Invoice]{
	invoiceFields,
}

func invoiceFields(vc *Context, i *models.Invoice, errs *Errors) error {
	if err := reference(vc, errs, "patients", "patient_id", i.PatientID, "patient"); err != nil {
		return err
	}

	if i.IssueDate.IsZero() {
		errs.Add("issue_date", "This field is required.")
	}
	switch {
	case i.DueDate.IsZero():
		errs.Add("due_date", "This field is required.")
	case !i.IssueDate.IsZero() && i.DueDate.Before(i.IssueDate):
		errs.Add("due_date", "Due date cannot be before issue date.")
	}

	switch {
	case i.TotalAmount.IsNegative():
		errs.Add("total_amount", "Total amount cannot be negative.")
	case i.TotalAmount.GreaterThanOrEqual(maxAmount):
		errs.Add("total_amount", "Ensure that there are no more than 10 digits in total.")
	}
	return nil
}
