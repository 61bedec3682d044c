package models

// Gender is the canonical sex/gender code stored on a patient.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Valid reports whether g is a known code.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// StaffRole is the canonical job code of a staff member.
type StaffRole string

const (
	RoleDoctor           StaffRole = "DOCTOR"
	RoleNurse            StaffRole = "NURSE"
	RoleSurgeon          StaffRole = "SURGEON"
	RoleAnesthesiologist StaffRole = "ANESTHESIOLOGIST"
	RolePharmacist       StaffRole = "PHARMACIST"
	RoleLabTechnician    StaffRole = "LAB_TECHNICIAN"
	RoleRadiologist      StaffRole = "RADIOLOGIST"
	RoleReceptionist     StaffRole = "RECEPTIONIST"
	RoleAdministrator    StaffRole = "ADMINISTRATOR"
	RoleOther            StaffRole = "OTHER"
)

// StaffRoles lists every role code.
var StaffRoles = []StaffRole{
	RoleDoctor, RoleNurse, RoleSurgeon, RoleAnesthesiologist, RolePharmacist,
	RoleLabTechnician, RoleRadiologist, RoleReceptionist, RoleAdministrator, RoleOther,
}

// Valid reports whether r is a known code.
func (r StaffRole) Valid() bool {
	for _, known := range StaffRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsMedical reports whether the role delivers clinical care.
func (r StaffRole) IsMedical() bool {
	switch r {
	case RoleDoctor, RoleNurse, RoleSurgeon, RoleAnesthesiologist, RoleRadiologist:
		return true
	}
	return false
}

// Department is the canonical department code.
type Department string

const (
	DeptGeneralMedicine Department = "GENERAL_MEDICINE"
	DeptEmergency       Department = "EMERGENCY"
	DeptCardiology      Department = "CARDIOLOGY"
	DeptPediatrics      Department = "PEDIATRICS"
	DeptSurgery         Department = "SURGERY"
	DeptAnesthesiology  Department = "ANESTHESIOLOGY"
	DeptPharmacy        Department = "PHARMACY"
	DeptLaboratory      Department = "LABORATORY"
	DeptRadiology       Department = "RADIOLOGY"
	DeptNursing         Department = "NURSING"
	DeptAdministration  Department = "ADMINISTRATION"
)

// Departments lists every department code.
var Departments = []Department{
	DeptGeneralMedicine, DeptEmergency, DeptCardiology, DeptPediatrics, DeptSurgery,
	DeptAnesthesiology, DeptPharmacy, DeptLaboratory, DeptRadiology, DeptNursing,
	DeptAdministration,
}

// Valid reports whether d is a known code.
func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// RequiredDepartment pins specialist roles to the department they work in.
var RequiredDepartment = map[StaffRole]Department{
	RolePharmacist:       DeptPharmacy,
	RoleLabTechnician:    DeptLaboratory,
	RoleRadiologist:      DeptRadiology,
	RoleSurgeon:          DeptSurgery,
	RoleAnesthesiologist: DeptAnesthesiology,
}

// ScheduleStatus tracks appointments and surgeries.
type ScheduleStatus string

const (
	StatusScheduled ScheduleStatus = "SCHEDULED"
	StatusCompleted ScheduleStatus = "COMPLETED"
	StatusCancelled ScheduleStatus = "CANCELLED"
)

// Valid reports whether s is a known code.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LabStatus tracks a laboratory test.
type LabStatus string

const (
	LabRequested LabStatus = "REQUESTED"
	LabCompleted LabStatus = "COMPLETED"
	LabCancelled LabStatus = "CANCELLED"
)

// Valid reports whether s is a known code.
func (s LabStatus) Valid() bool {
	switch s {
	case LabRequested, LabCompleted, LabCancelled:
		return true
	}
	return false
}

// CareStatus is the clinical condition recorded on a care entry.
type CareStatus string

const (
	CareStable           CareStatus = "STABLE"
	CareImproving        CareStatus = "IMPROVING"
	CareUnderObservation CareStatus = "UNDER_OBSERVATION"
	CareDeteriorating    CareStatus = "DETERIORATING"
	CareCritical         CareStatus = "CRITICAL"
	CareRecovered        CareStatus = "RECOVERED"
)

// Valid reports whether s is a known code.
func (s CareStatus) Valid() bool {
	switch s {
	case CareStable, CareImproving, CareUnderObservation, CareDeteriorating, CareCritical, CareRecovered:
		return true
	}
	return false
}

// InventoryCategory groups stock items.
type InventoryCategory string

const (
	CategoryMedication InventoryCategory = "MEDICATION"
	CategoryEquipment  InventoryCategory = "EQUIPMENT"
	CategorySupply     InventoryCategory = "SUPPLY"
	CategoryConsumable InventoryCategory = "CONSUMABLE"
	CategoryReagent    InventoryCategory = "REAGENT"
	CategoryOther      InventoryCategory = "OTHER"
)

// Valid reports whether c is a known code.
func (c InventoryCategory) Valid() bool {
	switch c {
	case CategoryMedication, CategoryEquipment, CategorySupply, CategoryConsumable, CategoryReagent, CategoryOther:
		return true
	}
	return false
}

// InventoryUnit is the unit a stock quantity is counted in.
type InventoryUnit string

const (
	UnitPiece  InventoryUnit = "PIECE"
	UnitBox    InventoryUnit = "BOX"
	UnitBottle InventoryUnit = "BOTTLE"
	UnitPack   InventoryUnit = "PACK"
	UnitVial   InventoryUnit = "VIAL"
	UnitML     InventoryUnit = "ML"
	UnitLitre  InventoryUnit = "L"
	UnitMG     InventoryUnit = "MG"
	UnitGram   InventoryUnit = "G"
	UnitKG     InventoryUnit = "KG"
)

// Valid reports whether u is a known code.
func (u InventoryUnit) Valid() bool {
	switch u {
	case UnitPiece, UnitBox, UnitBottle, UnitPack, UnitVial, UnitML, UnitLitre, UnitMG, UnitGram, UnitKG:
		return true
	}
	return false
}
