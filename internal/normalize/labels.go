package normalize

import "github.com/otcheredev/remedium-hms/internal/models"

// Legacy label tables. Keys are lower-case; each canonical code also maps to
// itself so re-normalizing is a no-op.

var genderLabels = map[string]models.Gender{
	"m":      models.GenderMale,
	"male":   models.GenderMale,
	"man":    models.GenderMale,
	"f":      models.GenderFemale,
	"female": models.GenderFemale,
	"woman":  models.GenderFemale,
	"o":      models.GenderOther,
	"other":  models.GenderOther,
}

var roleLabels = map[string]models.StaffRole{
	"doctor":                models.RoleDoctor,
	"physician":             models.RoleDoctor,
	"nurse":                 models.RoleNurse,
	"surgeon":               models.RoleSurgeon,
	"anesthesiologist":      models.RoleAnesthesiologist,
	"anaesthetist":          models.RoleAnesthesiologist,
	"pharmacist":            models.RolePharmacist,
	"lab technician":        models.RoleLabTechnician,
	"lab_technician":        models.RoleLabTechnician,
	"laboratory technician": models.RoleLabTechnician,
	"radiologist":           models.RoleRadiologist,
	"receptionist":          models.RoleReceptionist,
	"administrator":         models.RoleAdministrator,
	"admin":                 models.RoleAdministrator,
	"other":                 models.RoleOther,
}

var departmentLabels = map[string]models.Department{
	"general medicine": models.DeptGeneralMedicine,
	"general_medicine": models.DeptGeneralMedicine,
	"emergency":        models.DeptEmergency,
	"cardiology":       models.DeptCardiology,
	"pediatrics":       models.DeptPediatrics,
	"paediatrics":      models.DeptPediatrics,
	"surgery":          models.DeptSurgery,
	"anesthesiology":   models.DeptAnesthesiology,
	"anaesthesiology":  models.DeptAnesthesiology,
	"pharmacy":         models.DeptPharmacy,
	"laboratory":       models.DeptLaboratory,
	"lab":              models.DeptLaboratory,
	"radiology":        models.DeptRadiology,
	"nursing":          models.DeptNursing,
	"administration":   models.DeptAdministration,
}

var scheduleStatusLabels = map[string]models.ScheduleStatus{
	"scheduled": models.StatusScheduled,
	"completed": models.StatusCompleted,
	"cancelled": models.StatusCancelled,
	"canceled":  models.StatusCancelled,
}

var labStatusLabels = map[string]models.LabStatus{
	"requested": models.LabRequested,
	"completed": models.LabCompleted,
	"cancelled": models.LabCancelled,
	"canceled":  models.LabCancelled,
}

var careStatusLabels = map[string]models.CareStatus{
	"stable":            models.CareStable,
	"improving":         models.CareImproving,
	"under observation": models.CareUnderObservation,
	"under_observation": models.CareUnderObservation,
	"deteriorating":     models.CareDeteriorating,
	"critical":          models.CareCritical,
	"recovered":         models.CareRecovered,
}

var categoryLabels = map[string]models.InventoryCategory{
	"medication":  models.CategoryMedication,
	"medicine":    models.CategoryMedication,
	"drug":        models.CategoryMedication,
	"equipment":   models.CategoryEquipment,
	"supply":      models.CategorySupply,
	"supplies":    models.CategorySupply,
	"consumable":  models.CategoryConsumable,
	"consumables": models.CategoryConsumable,
	"reagent":     models.CategoryReagent,
	"reagents":    models.CategoryReagent,
	"other":       models.CategoryOther,
}

var unitLabels = map[string]models.InventoryUnit{
	"piece":      models.UnitPiece,
	"pieces":     models.UnitPiece,
	"pcs":        models.UnitPiece,
	"box":        models.UnitBox,
	"boxes":      models.UnitBox,
	"bottle":     models.UnitBottle,
	"bottles":    models.UnitBottle,
	"pack":       models.UnitPack,
	"packs":      models.UnitPack,
	"vial":       models.UnitVial,
	"vials":      models.UnitVial,
	"ml":         models.UnitML,
	"millilitre": models.UnitML,
	"milliliter": models.UnitML,
	"l":          models.UnitLitre,
	"litre":      models.UnitLitre,
	"liter":      models.UnitLitre,
	"mg":         models.UnitMG,
	"milligram":  models.UnitMG,
	"g":          models.UnitGram,
	"gram":       models.UnitGram,
	"kg":         models.UnitKG,
	"kilogram":   models.UnitKG,
}

// Gender maps a label such as "Male" to its code.
func Gender(g models.Gender) models.Gender { return code(genderLabels, g) }

// StaffRole maps a label such as "Lab Technician" to its code.
func StaffRole(r models.StaffRole) models.StaffRole { return code(roleLabels, r) }

// Department maps a department label to its code.
func Department(d models.Department) models.Department { return code(departmentLabels, d) }

// ScheduleStatus maps an appointment or surgery status label to its code.
func ScheduleStatus(s models.ScheduleStatus) models.ScheduleStatus {
	return code(scheduleStatusLabels, s)
}

// LabStatus maps a lab test status label to its code.
func LabStatus(s models.LabStatus) models.LabStatus { return code(labStatusLabels, s) }

// CareStatus maps a care status label to its code.
func CareStatus(s models.CareStatus) models.CareStatus { return code(careStatusLabels, s) }

// Category maps an inventory category label to its code.
func Category(c models.InventoryCategory) models.InventoryCategory {
	return code(categoryLabels, c)
}

// Unit maps an inventory unit label to its code.
func Unit(u models.InventoryUnit) models.InventoryUnit { return code(unitLabels, u) }
