package fleet

// Directory resolves vehicle and member ids to display names.
type Directory struct {
	vehicles map[int64]string
	members  map[int64]string
}

func NewDirectory(vehicles []*Vehicle, members []*Member) *Directory {
	d := &Directory{
		vehicles: make(map[int64]string, len(vehicles)),
		members:  make(map[int64]string, len(members)),
	}

	for _, v := range vehicles {
		d.vehicles[v.ID] = v.Name
	}

	for _, m := range members {
		d.members[m.ID] = m.Name
	}

	return d
}

// VehicleName returns "" for unknown ids.
func (d *Directory) VehicleName(id int64) string {
	return d.vehicles[id]
}

// MemberName returns "" when id is nil or unknown.
func (d *Directory) MemberName(id *int64) string {
	if id == nil {
		return ""
	}

	return d.members[*id]
}
