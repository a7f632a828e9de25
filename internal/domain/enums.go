package domain

import "fmt"

type ActivityStatus string

const (
	StatusPending    ActivityStatus = "pending"
	StatusInProgress ActivityStatus = "in-progress"
	StatusCompleted  ActivityStatus = "completed"
)

// ValidActivityStatuses is the canonical set of accepted status strings.
var ValidActivityStatuses = map[string]bool{
	"pending": true, "in-progress": true, "completed": true,
}

// ParseActivityStatus converts user input into an ActivityStatus, rejecting
// anything outside the closed set.
func ParseActivityStatus(s string) (ActivityStatus, error) {
	if !ValidActivityStatuses[s] {
		return "", fmt.Errorf("invalid status %q (want pending, in-progress or completed)", s)
	}
	return ActivityStatus(s), nil
}

type RaciRole string

const (
	RoleResponsible RaciRole = "responsible"
	RoleAccountable RaciRole = "accountable"
	RoleConsulted   RaciRole = "consulted"
	RoleInformed    RaciRole = "informed"
)

// RaciRoles lists the four roles in display order.
var RaciRoles = []RaciRole{RoleResponsible, RoleAccountable, RoleConsulted, RoleInformed}

func ParseRaciRole(s string) (RaciRole, error) {
	for _, r := range RaciRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid RACI role %q", s)
}

// View is the UI routing selector persisted alongside the hierarchy.
type View string

const (
	ViewStakeholders View = "stakeholders"
	ViewActivities   View = "activities"
	ViewProcessMap   View = "process-map"
)

// DefaultView is the view a fresh store starts in.
const DefaultView = ViewStakeholders

var ValidViews = map[string]bool{
	"stakeholders": true, "activities": true, "process-map": true,
}

func ParseView(s string) (View, error) {
	if !ValidViews[s] {
		return "", fmt.Errorf("invalid view %q (want stakeholders, activities or process-map)", s)
	}
	return View(s), nil
}
