package authz

// Role is a group name and the permissions it should hold.
type Role struct {
	Name        string
	Permissions []string
}

func grants(resource string, acts ...string) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = Codename(resource, a)
	}
	return out
}

func join(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// DefaultRoles is the role table applied by provisioning.
var DefaultRoles = []Role{
	{Name: "Admin", Permissions: AllCodenames()},
	{Name: "Doctor", Permissions: join(
		grants(ResourcePatients, ActionView, ActionChange),
		grants(ResourceAppointments, ActionView, ActionAdd, ActionChange),
		grants(ResourceLabTests, ActionView, ActionAdd),
		grants(ResourcePrescriptions, ActionView, ActionAdd),
		grants(ResourceCare, ActionView, ActionAdd, ActionChange),
		grants(ResourceSurgeries, ActionView, ActionAdd, ActionChange),
		grants(ResourceWards, ActionView),
		grants(ResourceRooms, ActionView),
	)},
	{Name: "Nurse", Permissions: join(
		grants(ResourcePatients, ActionView, ActionChange),
		grants(ResourceAppointments, ActionView, ActionChange),
		grants(ResourceCare, ActionView, ActionAdd, ActionChange),
		grants(ResourceWards, ActionView),
		grants(ResourceRooms, ActionView),
	)},
	{Name: "Receptionist", Permissions: join(
		grants(ResourcePatients, ActionView, ActionAdd, ActionChange),
		grants(ResourceAppointments, ActionView, ActionAdd, ActionChange),
		grants(ResourceInvoices, ActionView),
		grants(ResourceWards, ActionView),
		grants(ResourceRooms, ActionView),
	)},
	{Name: "Pharmacist", Permissions: join(
		grants(ResourcePatients, ActionView),
		grants(ResourcePrescriptions, ActionView, ActionChange),
		grants(ResourceInventory, ActionView),
	)},
	{Name: "Lab Technician", Permissions: join(
		grants(ResourcePatients, ActionView),
		grants(ResourceLabTests, ActionView, ActionChange),
	)},
}
