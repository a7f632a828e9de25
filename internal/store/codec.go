package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/procmap/internal/domain"
)

// StorageKey is the fixed name of the persisted record.
const StorageKey = "process-map-storage"

// SchemaVersion is written into every persisted record. Records without a
// version, or with version 0, predate versioning and use the same shapes.
const SchemaVersion = 1

// ErrUnsupportedVersion is returned for records written by a newer schema.
var ErrUnsupportedVersion = errors.New("unsupported state version")

type persistedState struct {
	CurrentView  domain.View          `json:"currentView"`
	Stakeholders []domain.Stakeholder `json:"stakeholders"`
}

type persistedEnvelope struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	env := persistedEnvelope{
		State: persistedState{
			CurrentView:  snap.CurrentView,
			Stakeholders: normalizeStakeholders(snap.Stakeholders),
		},
		Version: SchemaVersion,
	}
	return json.Marshal(env)
}

// decodeSnapshot accepts the versioned envelope, the unversioned envelope
// and a bare {currentView, stakeholders} object.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}

	var (
		state persistedState
		body  = data
	)
	if raw, ok := top["state"]; ok {
		version := 0
		if v, ok := top["version"]; ok {
			if err := json.Unmarshal(v, &version); err != nil {
				return nil, fmt.Errorf("decoding state version: %w", err)
			}
		}
		if version > SchemaVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
		}
		body = raw
	} else if _, ok := top["stakeholders"]; !ok {
		return nil, fmt.Errorf("decoding state: no state or stakeholders field")
	}

	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("decoding state body: %w", err)
	}

	view := state.CurrentView
	if !domain.ValidViews[string(view)] {
		view = domain.DefaultView
	}
	return newSnapshot(view, normalizeStakeholders(state.Stakeholders)), nil
}

// normalizeStakeholders fills nil sequences, repairs empty back-references
// and coerces unknown statuses to pending. It returns a new tree.
func normalizeStakeholders(in []domain.Stakeholder) []domain.Stakeholder {
	out := make([]domain.Stakeholder, len(in))
	for si, s := range in {
		entities := make([]domain.Entity, len(s.Entities))
		for ei, e := range s.Entities {
			if e.StakeholderID == "" {
				e.StakeholderID = s.ID
			}
			activities := make([]domain.Activity, len(e.Activities))
			for ai, a := range e.Activities {
				if a.EntityID == "" {
					a.EntityID = e.ID
				}
				if !domain.ValidActivityStatuses[string(a.Status)] {
					a.Status = domain.StatusPending
				}
				activities[ai] = a.Normalize()
			}
			e.Activities = activities
			entities[ei] = e
		}
		s.Entities = entities
		out[si] = s
	}
	return out
}
