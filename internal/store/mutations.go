package store

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/procmap/internal/domain"
)

// SetView replaces the current view selector.
func (s *Store) SetView(ctx context.Context, view domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	err := s.commit(ctx, newSnapshot(view, cur.Stakeholders))
	s.observe(ctx, "set_view", started, true, err, map[string]any{"view": string(view)})
	return err
}

// AddStakeholder appends a new stakeholder with a fresh ID and no entities.
func (s *Store) AddStakeholder(ctx context.Context, f domain.StakeholderFields) (domain.Stakeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	created := domain.Stakeholder{
		ID:          s.freshID(cur),
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		Entities:    []domain.Entity{},
	}

	next := make([]domain.Stakeholder, len(cur.Stakeholders), len(cur.Stakeholders)+1)
	copy(next, cur.Stakeholders)
	next = append(next, created)

	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "add_stakeholder", started, true, err, map[string]any{"stakeholder_id": created.ID})
	if err != nil {
		return domain.Stakeholder{}, err
	}
	return created, nil
}

// UpdateStakeholder merges p into the matching stakeholder. It reports
// false and changes nothing when id does not resolve.
func (s *Store) UpdateStakeholder(ctx context.Context, id string, p domain.StakeholderPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	loc, ok := cur.idx.lookup(id, kindStakeholder)
	if !ok {
		s.observe(ctx, "update_stakeholder", started, false, nil, map[string]any{"stakeholder_id": id})
		return false, nil
	}

	next := replaceStakeholder(cur.Stakeholders, loc.stakeholder, p.Apply(cur.Stakeholders[loc.stakeholder]))
	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "update_stakeholder", started, true, err, map[string]any{"stakeholder_id": id})
	return err == nil, err
}

// AddEntity appends a new entity to the stakeholder. It reports false and
// changes nothing when stakeholderID does not resolve.
func (s *Store) AddEntity(ctx context.Context, stakeholderID string, f domain.EntityFields) (domain.Entity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	loc, ok := cur.idx.lookup(stakeholderID, kindStakeholder)
	if !ok {
		s.observe(ctx, "add_entity", started, false, nil, map[string]any{"stakeholder_id": stakeholderID})
		return domain.Entity{}, false, nil
	}

	created := domain.Entity{
		ID:            s.freshID(cur),
		StakeholderID: stakeholderID,
		Name:          f.Name,
		Description:   f.Description,
		Color:         f.Color,
		Activities:    []domain.Activity{},
	}

	owner := cur.Stakeholders[loc.stakeholder]
	entities := make([]domain.Entity, len(owner.Entities), len(owner.Entities)+1)
	copy(entities, owner.Entities)
	owner.Entities = append(entities, created)

	next := replaceStakeholder(cur.Stakeholders, loc.stakeholder, owner)
	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "add_entity", started, true, err, map[string]any{
		"stakeholder_id": stakeholderID,
		"entity_id":      created.ID,
	})
	if err != nil {
		return domain.Entity{}, false, err
	}
	return created, true, nil
}

// UpdateEntity merges p into the entity with the given ID, wherever it lives.
func (s *Store) UpdateEntity(ctx context.Context, id string, p domain.EntityPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	loc, ok := cur.idx.lookup(id, kindEntity)
	if !ok {
		s.observe(ctx, "update_entity", started, false, nil, map[string]any{"entity_id": id})
		return false, nil
	}

	owner := cur.Stakeholders[loc.stakeholder]
	owner.Entities = replaceEntity(owner.Entities, loc.entity, p.Apply(owner.Entities[loc.entity]))

	next := replaceStakeholder(cur.Stakeholders, loc.stakeholder, owner)
	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "update_entity", started, true, err, map[string]any{"entity_id": id})
	return err == nil, err
}

// AddActivity appends a new activity to the entity. Nil sequences in f are
// stored as empty ones and an empty status defaults to pending.
func (s *Store) AddActivity(ctx context.Context, entityID string, f domain.ActivityFields) (domain.Activity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	loc, ok := cur.idx.lookup(entityID, kindEntity)
	if !ok {
		s.observe(ctx, "add_activity", started, false, nil, map[string]any{"entity_id": entityID})
		return domain.Activity{}, false, nil
	}

	created := domain.Activity{
		ID:           s.freshID(cur),
		EntityID:     entityID,
		Name:         f.Name,
		Description:  f.Description,
		StartDate:    f.StartDate,
		Deadline:     f.Deadline,
		Status:       f.Status,
		Deliverables: domain.CloneStrings(f.Deliverables),
		Dependencies: domain.CloneStrings(f.Dependencies),
		Raci:         f.Raci.Clone(),
	}.Normalize()

	owner := cur.Stakeholders[loc.stakeholder]
	entity := owner.Entities[loc.entity]
	activities := make([]domain.Activity, len(entity.Activities), len(entity.Activities)+1)
	copy(activities, entity.Activities)
	entity.Activities = append(activities, created)
	owner.Entities = replaceEntity(owner.Entities, loc.entity, entity)

	next := replaceStakeholder(cur.Stakeholders, loc.stakeholder, owner)
	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "add_activity", started, true, err, map[string]any{
		"entity_id":   entityID,
		"activity_id": created.ID,
	})
	if err != nil {
		return domain.Activity{}, false, err
	}
	return created, true, nil
}

// UpdateActivity merges p into the activity with the given ID, wherever it
// lives.
func (s *Store) UpdateActivity(ctx context.Context, id string, p domain.ActivityPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	cur := s.Snapshot()
	loc, ok := cur.idx.lookup(id, kindActivity)
	if !ok {
		s.observe(ctx, "update_activity", started, false, nil, map[string]any{"activity_id": id})
		return false, nil
	}

	owner := cur.Stakeholders[loc.stakeholder]
	entity := owner.Entities[loc.entity]
	activities := make([]domain.Activity, len(entity.Activities))
	copy(activities, entity.Activities)
	activities[loc.activity] = p.Apply(activities[loc.activity])
	entity.Activities = activities
	owner.Entities = replaceEntity(owner.Entities, loc.entity, entity)

	next := replaceStakeholder(cur.Stakeholders, loc.stakeholder, owner)
	err := s.commit(ctx, newSnapshot(cur.CurrentView, next))
	s.observe(ctx, "update_activity", started, true, err, map[string]any{"activity_id": id})
	return err == nil, err
}

// Reset removes the persisted record, clearing every stakeholder and
// restoring the default view. A later Open starts from the empty state.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	started := time.Now()

	err := s.repo.Delete(ctx, s.key)
	if err != nil {
		err = fmt.Errorf("clearing state: %w", err)
	} else {
		next := emptySnapshot()
		s.current.Store(next)
		s.publish(next)
	}
	s.observe(ctx, "reset", started, true, err, nil)
	return err
}

// FindStakeholder looks up a stakeholder in the current snapshot.
func (s *Store) FindStakeholder(id string) (domain.Stakeholder, bool) {
	return s.Snapshot().FindStakeholder(id)
}

// FindEntity looks up an entity in the current snapshot.
func (s *Store) FindEntity(id string) (domain.Entity, bool) {
	return s.Snapshot().FindEntity(id)
}

// FindActivity looks up an activity in the current snapshot.
func (s *Store) FindActivity(id string) (domain.Activity, bool) {
	return s.Snapshot().FindActivity(id)
}

// replaceStakeholder returns a copy of in with position i replaced.
func replaceStakeholder(in []domain.Stakeholder, i int, v domain.Stakeholder) []domain.Stakeholder {
	out := make([]domain.Stakeholder, len(in))
	copy(out, in)
	out[i] = v
	return out
}

// replaceEntity returns a copy of in with position i replaced.
func replaceEntity(in []domain.Entity, i int, v domain.Entity) []domain.Entity {
	out := make([]domain.Entity, len(in))
	copy(out, in)
	out[i] = v
	return out
}

func (s *Store) observe(ctx context.Context, name string, started time.Time, found bool, err error, fields map[string]any) {
	s.observer.ObserveMutation(ctx, MutationEvent{
		Name:      name,
		Duration:  time.Since(started),
		Found:     found,
		Success:   found && err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
