package store

import "github.com/alexanderramin/procmap/internal/domain"

type recordKind int

const (
	kindStakeholder recordKind = iota + 1
	kindEntity
	kindActivity
)

// location addresses a record by its position in a snapshot.
type location struct {
	kind        recordKind
	stakeholder int
	entity      int
	activity    int
}

// index maps every ID in a snapshot to its position. It is rebuilt with
// each snapshot; the tree stays the source of truth. On duplicate IDs
// (only possible in hand-edited persisted data) the first occurrence wins.
type index struct {
	byID map[string]location
}

func buildIndex(stakeholders []domain.Stakeholder) *index {
	idx := &index{byID: make(map[string]location)}
	for si, s := range stakeholders {
		idx.put(s.ID, location{kind: kindStakeholder, stakeholder: si})
		for ei, e := range s.Entities {
			idx.put(e.ID, location{kind: kindEntity, stakeholder: si, entity: ei})
			for ai, a := range e.Activities {
				idx.put(a.ID, location{kind: kindActivity, stakeholder: si, entity: ei, activity: ai})
			}
		}
	}
	return idx
}

func (i *index) put(id string, loc location) {
	if _, exists := i.byID[id]; !exists {
		i.byID[id] = loc
	}
}

func (i *index) has(id string) bool {
	_, ok := i.byID[id]
	return ok
}

func (i *index) lookup(id string, kind recordKind) (location, bool) {
	loc, ok := i.byID[id]
	if !ok || loc.kind != kind {
		return location{}, false
	}
	return loc, true
}

// FindStakeholder returns the stakeholder with the given ID.
func (s *Snapshot) FindStakeholder(id string) (domain.Stakeholder, bool) {
	loc, ok := s.idx.lookup(id, kindStakeholder)
	if !ok {
		return domain.Stakeholder{}, false
	}
	return s.Stakeholders[loc.stakeholder], true
}

// FindEntity returns the entity with the given ID.
func (s *Snapshot) FindEntity(id string) (domain.Entity, bool) {
	loc, ok := s.idx.lookup(id, kindEntity)
	if !ok {
		return domain.Entity{}, false
	}
	return s.Stakeholders[loc.stakeholder].Entities[loc.entity], true
}

// FindActivity returns the activity with the given ID.
func (s *Snapshot) FindActivity(id string) (domain.Activity, bool) {
	loc, ok := s.idx.lookup(id, kindActivity)
	if !ok {
		return domain.Activity{}, false
	}
	return s.Stakeholders[loc.stakeholder].Entities[loc.entity].Activities[loc.activity], true
}

// DisplayName resolves an ID of any kind to its record name. Used for
// RACI assignments, which may name entities or stakeholders.
func (s *Snapshot) DisplayName(id string) (string, bool) {
	loc, ok := s.idx.byID[id]
	if !ok {
		return "", false
	}
	st := s.Stakeholders[loc.stakeholder]
	switch loc.kind {
	case kindStakeholder:
		return st.Name, true
	case kindEntity:
		return st.Entities[loc.entity].Name, true
	default:
		return st.Entities[loc.entity].Activities[loc.activity].Name, true
	}
}

// IDs returns every ID in the snapshot.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.idx.byID))
	for id := range s.idx.byID {
		ids = append(ids, id)
	}
	return ids
}
