package domain

// Stakeholder is the top-level owner in the hierarchy. It owns its Entities
// exclusively; slice order is display order.
type Stakeholder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Entities    []Entity `json:"entities"`
}

// Entity belongs to exactly one Stakeholder. StakeholderID is a lookup
// back-reference only.
type Entity struct {
	ID            string     `json:"id"`
	StakeholderID string     `json:"stakeholderId"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Color         string     `json:"color"`
	Activities    []Activity `json:"activities"`
}

// Activity is a tracked unit of work. StartDate and Deadline are ISO 8601
// calendar dates kept in string form. Dependencies name other activity IDs
// and are not required to resolve.
type Activity struct {
	ID           string         `json:"id"`
	EntityID     string         `json:"entityId"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	StartDate    string         `json:"startDate"`
	Deadline     string         `json:"deadline"`
	Status       ActivityStatus `json:"status"`
	Deliverables []string       `json:"deliverables"`
	Dependencies []string       `json:"dependencies"`
	Raci         Raci           `json:"raci"`
}

// Raci holds the entity-or-stakeholder IDs assigned to each role.
type Raci struct {
	Responsible []string `json:"responsible"`
	Accountable []string `json:"accountable"`
	Consulted   []string `json:"consulted"`
	Informed    []string `json:"informed"`
}

// Role returns the IDs assigned to the given role.
func (r Raci) Role(role RaciRole) []string {
	switch role {
	case RoleResponsible:
		return r.Responsible
	case RoleAccountable:
		return r.Accountable
	case RoleConsulted:
		return r.Consulted
	case RoleInformed:
		return r.Informed
	default:
		return nil
	}
}

// WithRole returns a copy of r with the given role's IDs replaced. An
// unknown role leaves r unchanged.
func (r Raci) WithRole(role RaciRole, ids []string) Raci {
	out := r.Clone()
	switch role {
	case RoleResponsible:
		out.Responsible = ids
	case RoleAccountable:
		out.Accountable = ids
	case RoleConsulted:
		out.Consulted = ids
	case RoleInformed:
		out.Informed = ids
	}
	return out
}

// Normalize replaces nil buckets with empty slices so that encoded records
// always carry arrays.
func (r Raci) Normalize() Raci {
	return Raci{
		Responsible: NonNilStrings(r.Responsible),
		Accountable: NonNilStrings(r.Accountable),
		Consulted:   NonNilStrings(r.Consulted),
		Informed:    NonNilStrings(r.Informed),
	}
}

func (r Raci) Clone() Raci {
	return Raci{
		Responsible: CloneStrings(r.Responsible),
		Accountable: CloneStrings(r.Accountable),
		Consulted:   CloneStrings(r.Consulted),
		Informed:    CloneStrings(r.Informed),
	}
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	a.Deliverables = CloneStrings(a.Deliverables)
	a.Dependencies = CloneStrings(a.Dependencies)
	a.Raci = a.Raci.Clone()
	return a
}

// Normalize fills nil sequences with empty ones.
func (a Activity) Normalize() Activity {
	a.Deliverables = NonNilStrings(a.Deliverables)
	a.Dependencies = NonNilStrings(a.Dependencies)
	a.Raci = a.Raci.Normalize()
	if a.Status == "" {
		a.Status = StatusPending
	}
	return a
}

func (e Entity) Clone() Entity {
	acts := make([]Activity, len(e.Activities))
	for i, a := range e.Activities {
		acts[i] = a.Clone()
	}
	e.Activities = acts
	return e
}

func (s Stakeholder) Clone() Stakeholder {
	ents := make([]Entity, len(s.Entities))
	for i, e := range s.Entities {
		ents[i] = e.Clone()
	}
	s.Entities = ents
	return s
}

// CloneStakeholders deep-copies a stakeholder sequence.
func CloneStakeholders(in []Stakeholder) []Stakeholder {
	out := make([]Stakeholder, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// EntityCount returns the number of entities across all stakeholders.
func EntityCount(stakeholders []Stakeholder) int {
	n := 0
	for _, s := range stakeholders {
		n += len(s.Entities)
	}
	return n
}
