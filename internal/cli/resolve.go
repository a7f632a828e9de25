package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/domain"
	"github.com/alexanderramin/procmap/internal/store"
)

type idKind string

const (
	kindStakeholder idKind = "stakeholder"
	kindEntity      idKind = "entity"
	kindActivity    idKind = "activity"
	kindParty       idKind = "stakeholder or entity"
)

// candidateIDs lists the IDs of the given kind in tree order.
func candidateIDs(snap *store.Snapshot, kind idKind) []string {
	var ids []string
	for _, s := range snap.Stakeholders {
		if kind == kindStakeholder || kind == kindParty {
			ids = append(ids, s.ID)
		}
		for _, e := range s.Entities {
			if kind == kindEntity || kind == kindParty {
				ids = append(ids, e.ID)
			}
			if kind != kindActivity {
				continue
			}
			for _, a := range e.Activities {
				ids = append(ids, a.ID)
			}
		}
	}
	return ids
}

// resolveID resolves a full ID or a unique ID prefix.
func resolveID(snap *store.Snapshot, kind idKind, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	ids := candidateIDs(snap, kind)
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveIDs resolves every input. Dependencies may legitimately point at
// IDs that do not exist, so with allowUnknown an unmatched value is kept
// as given instead of failing.
func resolveIDs(snap *store.Snapshot, kind idKind, inputs []string, allowUnknown bool) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		id, err := resolveID(snap, kind, in)
		if err != nil {
			if allowUnknown && len(candidatePrefixMatches(snap, kind, in)) == 0 {
				out = append(out, in)
				continue
			}
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func candidatePrefixMatches(snap *store.Snapshot, kind idKind, prefix string) []string {
	var matches []string
	for _, id := range candidateIDs(snap, kind) {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	return matches
}

// displayName returns a record's name for messages, falling back to the ID.
func displayName(snap *store.Snapshot, id string) string {
	if name, ok := snap.DisplayName(id); ok {
		return name
	}
	return id
}

// parseStatus parses a status flag value, defaulting empty to pending.
func parseStatus(s string) (domain.ActivityStatus, error) {
	if s == "" {
		return domain.StatusPending, nil
	}
	return domain.ParseActivityStatus(s)
}
