package timeline

import (
	"math"

	"github.com/alexanderramin/procmap/internal/domain"
)

// Row is one entity's lane.
type Row struct {
	Index         int
	EntityID      string
	StakeholderID string
	Name          string
	Color         string
}

// StakeholderBlock is the run of rows owned by one stakeholder. A
// stakeholder without entities has RowSpan 0.
type StakeholderBlock struct {
	StakeholderID string
	Name          string
	Color         string
	StartRow      int
	RowSpan       int
}

// Node is a placed activity. X and Y are the node centre.
type Node struct {
	ActivityID    string
	EntityID      string
	StakeholderID string
	Name          string
	Deadline      string
	Status        domain.ActivityStatus
	Color         string
	Row           int
	Month         int
	Fraction      float64 // day of month / days in month
	X             float64
	Y             float64
}

// Connector links a source activity to one of its dependencies.
type Connector struct {
	ID       string
	SourceID string
	TargetID string
	Color    string
	Path     Path
}

// OmissionReason says why an element was not drawn.
type OmissionReason string

const (
	OmitOutOfWindow        OmissionReason = "out_of_window"
	OmitBadDeadline        OmissionReason = "bad_deadline"
	OmitDanglingDependency OmissionReason = "dangling_dependency"
	OmitUnplacedDependency OmissionReason = "unplaced_dependency"
)

// Omission records one element left out of the projection. Reference is
// the dependency ID for dependency omissions.
type Omission struct {
	ActivityID string
	Reference  string
	Reason     OmissionReason
}

// Projection is the full geometry for one hierarchy and window.
type Projection struct {
	Window     Window
	Config     Config
	Rows       []Row
	Blocks     []StakeholderBlock
	Nodes      []Node
	Connectors []Connector
	Width      float64
	Height     float64
	Omitted    []Omission
}

// Node returns the placed node for an activity.
func (p Projection) Node(activityID string) (Node, bool) {
	for _, n := range p.Nodes {
		if n.ActivityID == activityID {
			return n, true
		}
	}
	return Node{}, false
}

// Project computes the layout. It is recomputed from scratch on every call.
func Project(stakeholders []domain.Stakeholder, w Window, cfg Config) Projection {
	cfg = cfg.withDefaults()
	p := Projection{
		Window:     w,
		Config:     cfg,
		Rows:       []Row{},
		Blocks:     []StakeholderBlock{},
		Nodes:      []Node{},
		Connectors: []Connector{},
	}

	p.assignRows(stakeholders)
	p.placeNodes(stakeholders)
	p.routeConnectors(stakeholders)

	p.Width = cfg.TimelineLeft() + WindowMonths*cfg.CellWidth
	p.Height = math.Max(float64(len(p.Rows))*cfg.CellHeight+cfg.HeaderHeight, cfg.MinHeight)
	return p
}

func (p *Projection) assignRows(stakeholders []domain.Stakeholder) {
	row := 0
	for _, s := range stakeholders {
		p.Blocks = append(p.Blocks, StakeholderBlock{
			StakeholderID: s.ID,
			Name:          s.Name,
			Color:         s.Color,
			StartRow:      row,
			RowSpan:       len(s.Entities),
		})
		for _, e := range s.Entities {
			p.Rows = append(p.Rows, Row{
				Index:         row,
				EntityID:      e.ID,
				StakeholderID: s.ID,
				Name:          e.Name,
				Color:         e.Color,
			})
			row++
		}
	}
}

func (p *Projection) placeNodes(stakeholders []domain.Stakeholder) {
	cfg := p.Config
	row := 0
	for _, s := range stakeholders {
		for _, e := range s.Entities {
			for _, a := range e.Activities {
				deadline, ok := ParseDate(a.Deadline)
				if !ok {
					p.omit(a.ID, "", OmitBadDeadline)
					continue
				}
				month, ok := p.Window.MonthIndex(deadline)
				if !ok {
					p.omit(a.ID, "", OmitOutOfWindow)
					continue
				}

				fraction := float64(deadline.Day()) / float64(DaysIn(deadline))
				p.Nodes = append(p.Nodes, Node{
					ActivityID:    a.ID,
					EntityID:      e.ID,
					StakeholderID: s.ID,
					Name:          a.Name,
					Deadline:      a.Deadline,
					Status:        a.Status,
					Color:         e.Color,
					Row:           row,
					Month:         month,
					Fraction:      fraction,
					X:             cfg.TimelineLeft() + float64(month)*cfg.CellWidth + fraction*cfg.CellWidth,
					Y:             float64(row)*cfg.CellHeight + cfg.CellHeight/2 + cfg.HeaderHeight - cfg.CellHeight,
				})
			}
			row++
		}
	}
}

func (p *Projection) routeConnectors(stakeholders []domain.Stakeholder) {
	placed := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		// Duplicate IDs resolve to the first node, matching Snapshot lookups.
		if _, ok := placed[n.ActivityID]; !ok {
			placed[n.ActivityID] = i
		}
	}
	known := make(map[string]bool)
	for _, s := range stakeholders {
		for _, e := range s.Entities {
			for _, a := range e.Activities {
				known[a.ID] = true
			}
		}
	}

	half := p.Config.NodeSize / 2
	for _, s := range stakeholders {
		for _, e := range s.Entities {
			for _, a := range e.Activities {
				si, ok := placed[a.ID]
				if !ok {
					continue
				}
				source := p.Nodes[si]
				for _, dep := range a.Dependencies {
					ti, ok := placed[dep]
					if !ok {
						reason := OmitDanglingDependency
						if known[dep] {
							reason = OmitUnplacedDependency
						}
						p.omit(a.ID, dep, reason)
						continue
					}
					target := p.Nodes[ti]
					p.Connectors = append(p.Connectors, Connector{
						ID:       source.ActivityID + "-" + target.ActivityID,
						SourceID: source.ActivityID,
						TargetID: target.ActivityID,
						Color:    source.Color,
						Path: NewPath(
							Point{X: source.X + half, Y: source.Y},
							Point{X: target.X - half, Y: target.Y},
						),
					})
				}
			}
		}
	}
}

func (p *Projection) omit(activityID, ref string, reason OmissionReason) {
	p.Omitted = append(p.Omitted, Omission{ActivityID: activityID, Reference: ref, Reason: reason})
}
