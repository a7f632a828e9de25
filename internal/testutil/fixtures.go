package testutil

import (
	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/google/uuid"
)

// Activity options
type ActivityOption func(*domain.ActivityFields)

func WithDeadline(d string) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.Deadline = d
	}
}

func WithStartDate(d string) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.StartDate = d
	}
}

func WithStatus(s domain.ActivityStatus) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.Status = s
	}
}

func WithDependencies(ids ...string) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.Dependencies = ids
	}
}

func WithDeliverables(items ...string) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.Deliverables = items
	}
}

func WithRaci(r domain.Raci) ActivityOption {
	return func(f *domain.ActivityFields) {
		f.Raci = r
	}
}

// NewActivityFields returns creation fields for an activity with a
// deadline inside January 2024 unless overridden.
func NewActivityFields(name string, opts ...ActivityOption) domain.ActivityFields {
	f := domain.ActivityFields{
		Name:        name,
		Description: name + " description",
		StartDate:   "2024-01-01",
		Deadline:    "2024-01-31",
		Status:      domain.StatusPending,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func NewStakeholderFields(name string) domain.StakeholderFields {
	return domain.StakeholderFields{Name: name, Description: name + " description", Color: "#3b82f6"}
}

func NewEntityFields(name string) domain.EntityFields {
	return domain.EntityFields{Name: name, Description: name + " description", Color: "#10b981"}
}

// HierarchyBuilder assembles a stakeholder tree directly, without a store.
// It is used by projection and formatter tests that need fixed shapes.
type HierarchyBuilder struct {
	stakeholders []domain.Stakeholder
}

func NewHierarchy() *HierarchyBuilder {
	return &HierarchyBuilder{}
}

// Stakeholder appends a stakeholder and returns its ID.
func (b *HierarchyBuilder) Stakeholder(name string) string {
	id := uuid.New().String()
	b.stakeholders = append(b.stakeholders, domain.Stakeholder{
		ID:       id,
		Name:     name,
		Color:    "#3b82f6",
		Entities: []domain.Entity{},
	})
	return id
}

// Entity appends an entity to the stakeholder and returns its ID.
// Unknown stakeholder IDs are ignored and an empty string is returned.
func (b *HierarchyBuilder) Entity(stakeholderID, name string) string {
	for i := range b.stakeholders {
		if b.stakeholders[i].ID != stakeholderID {
			continue
		}
		id := uuid.New().String()
		b.stakeholders[i].Entities = append(b.stakeholders[i].Entities, domain.Entity{
			ID:            id,
			StakeholderID: stakeholderID,
			Name:          name,
			Color:         "#10b981",
			Activities:    []domain.Activity{},
		})
		return id
	}
	return ""
}

// Activity appends an activity to the entity and returns its ID.
func (b *HierarchyBuilder) Activity(entityID, name string, opts ...ActivityOption) string {
	return b.ActivityWithID(entityID, uuid.New().String(), name, opts...)
}

// ActivityWithID is Activity with a caller-chosen ID.
func (b *HierarchyBuilder) ActivityWithID(entityID, id, name string, opts ...ActivityOption) string {
	f := NewActivityFields(name, opts...)
	for i := range b.stakeholders {
		for j := range b.stakeholders[i].Entities {
			e := &b.stakeholders[i].Entities[j]
			if e.ID != entityID {
				continue
			}
			e.Activities = append(e.Activities, domain.Activity{
				ID:           id,
				EntityID:     entityID,
				Name:         f.Name,
				Description:  f.Description,
				StartDate:    f.StartDate,
				Deadline:     f.Deadline,
				Status:       f.Status,
				Deliverables: f.Deliverables,
				Dependencies: f.Dependencies,
				Raci:         f.Raci,
			}.Normalize())
			return id
		}
	}
	return ""
}

// Build returns a deep copy of the assembled stakeholders.
func (b *HierarchyBuilder) Build() []domain.Stakeholder {
	return domain.CloneStakeholders(b.stakeholders)
}
