package timeline

// WindowMonths is the fixed length of the projected window.
const WindowMonths = 12

// Config holds pixel dimensions for the grid.
type Config struct {
	CellWidth        float64 // one month column
	CellHeight       float64 // one entity row
	HeaderHeight     float64
	LabelColumnWidth float64 // width of each of the two label columns
	NodeSize         float64
	MinHeight        float64
}

// DefaultConfig returns the standard grid dimensions.
func DefaultConfig() Config {
	return Config{
		CellWidth:        200,
		CellHeight:       80,
		HeaderHeight:     80,
		LabelColumnWidth: 200,
		NodeSize:         24,
		MinHeight:        600,
	}
}

// withDefaults replaces non-positive dimensions with their defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CellWidth <= 0 {
		c.CellWidth = d.CellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = d.CellHeight
	}
	if c.HeaderHeight <= 0 {
		c.HeaderHeight = d.HeaderHeight
	}
	if c.LabelColumnWidth <= 0 {
		c.LabelColumnWidth = d.LabelColumnWidth
	}
	if c.NodeSize <= 0 {
		c.NodeSize = d.NodeSize
	}
	if c.MinHeight < 0 {
		c.MinHeight = d.MinHeight
	}
	return c
}

// TimelineLeft is the x offset where the first month column starts.
func (c Config) TimelineLeft() float64 {
	return 2 * c.LabelColumnWidth
}
