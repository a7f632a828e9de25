package domain

// StakeholderFields are the caller-supplied values for a new Stakeholder.
type StakeholderFields struct {
	Name        string
	Description string
	Color       string
}

// EntityFields are the caller-supplied values for a new Entity.
type EntityFields struct {
	Name        string
	Description string
	Color       string
}

// ActivityFields are the caller-supplied values for a new Activity.
type ActivityFields struct {
	Name         string
	Description  string
	StartDate    string
	Deadline     string
	Status       ActivityStatus
	Deliverables []string
	Dependencies []string
	Raci         Raci
}

// StakeholderPatch is a partial update. Nil fields are left unchanged.
type StakeholderPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// Apply merges the patch into s. ID and Entities are never touched.
func (p StakeholderPatch) Apply(s Stakeholder) Stakeholder {
	s.Name = StrFromPtrWithDefault(s.Name, p.Name)
	s.Description = StrFromPtrWithDefault(s.Description, p.Description)
	s.Color = StrFromPtrWithDefault(s.Color, p.Color)
	return s
}

func (p StakeholderPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil
}

// EntityPatch is a partial update. Nil fields are left unchanged.
type EntityPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// Apply merges the patch into e. ID, StakeholderID and Activities are
// never touched.
func (p EntityPatch) Apply(e Entity) Entity {
	e.Name = StrFromPtrWithDefault(e.Name, p.Name)
	e.Description = StrFromPtrWithDefault(e.Description, p.Description)
	e.Color = StrFromPtrWithDefault(e.Color, p.Color)
	return e
}

func (p EntityPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil
}

// ActivityPatch is a partial update. Nil fields are left unchanged; a
// non-nil slice pointer replaces the whole sequence.
type ActivityPatch struct {
	Name         *string
	Description  *string
	StartDate    *string
	Deadline     *string
	Status       *ActivityStatus
	Deliverables *[]string
	Dependencies *[]string
	Raci         *Raci
}

// Apply merges the patch into a. ID and EntityID are never touched.
func (p ActivityPatch) Apply(a Activity) Activity {
	a.Name = StrFromPtrWithDefault(a.Name, p.Name)
	a.Description = StrFromPtrWithDefault(a.Description, p.Description)
	a.StartDate = StrFromPtrWithDefault(a.StartDate, p.StartDate)
	a.Deadline = StrFromPtrWithDefault(a.Deadline, p.Deadline)
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Deliverables != nil {
		a.Deliverables = NonNilStrings(CloneStrings(*p.Deliverables))
	}
	if p.Dependencies != nil {
		a.Dependencies = NonNilStrings(CloneStrings(*p.Dependencies))
	}
	if p.Raci != nil {
		a.Raci = p.Raci.Clone().Normalize()
	}
	return a
}

func (p ActivityPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil &&
		p.Deadline == nil && p.Status == nil && p.Deliverables == nil &&
		p.Dependencies == nil && p.Raci == nil
}
