package formatter

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alexanderramin/procmap/internal/timeline"
)

const (
	svgGridStroke = "#e5e7eb"
	svgTextFill   = "#374151"
)

// RenderSVG draws a projection as a standalone SVG document. Grid, labels
// and stakeholder bands use canvas coordinates; nodes and connectors use the
// projection's own coordinates, whose origin sits one row below the top.
func RenderSVG(p timeline.Projection) string {
	cfg := p.Config
	left := cfg.TimelineLeft()
	header := cfg.HeaderHeight

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif" font-size="12">`+"\n",
		svgNum(p.Width), svgNum(p.Height), svgNum(p.Width), svgNum(p.Height))
	fmt.Fprintf(&b, `  <rect width="%s" height="%s" fill="#ffffff"/>`+"\n", svgNum(p.Width), svgNum(p.Height))

	// Header labels.
	b.WriteString(`  <g class="header">` + "\n")
	fmt.Fprintf(&b, `    <text x="8" y="%s" font-weight="bold" fill="%s">Stakeholder</text>`+"\n", svgNum(header/2), svgTextFill)
	fmt.Fprintf(&b, `    <text x="%s" y="%s" font-weight="bold" fill="%s">Entity</text>`+"\n", svgNum(cfg.LabelColumnWidth+8), svgNum(header/2), svgTextFill)
	for i, m := range p.Window.Months() {
		x := left + float64(i)*cfg.CellWidth
		fmt.Fprintf(&b, `    <line x1="%s" y1="0" x2="%s" y2="%s" stroke="%s"/>`+"\n", svgNum(x), svgNum(x), svgNum(p.Height), svgGridStroke)
		fmt.Fprintf(&b, `    <text x="%s" y="%s" text-anchor="middle" fill="%s">%s</text>`+"\n",
			svgNum(x+cfg.CellWidth/2), svgNum(header/2), svgTextFill, m.Format("Jan 2006"))
	}
	b.WriteString("  </g>\n")

	// Stakeholder bands and entity rows.
	b.WriteString(`  <g class="rows">` + "\n")
	for _, blk := range p.Blocks {
		if blk.RowSpan == 0 {
			continue
		}
		y := header + float64(blk.StartRow)*cfg.CellHeight
		h := float64(blk.RowSpan) * cfg.CellHeight
		fmt.Fprintf(&b, `    <rect x="0" y="%s" width="%s" height="%s" fill="%s" fill-opacity="0.1"/>`+"\n",
			svgNum(y), svgNum(cfg.LabelColumnWidth), svgNum(h), svgColor(blk.Color))
		fmt.Fprintf(&b, `    <text x="8" y="%s" fill="%s" font-weight="bold">%s</text>`+"\n",
			svgNum(y+h/2), svgColor(blk.Color), html.EscapeString(blk.Name))
	}
	for _, r := range p.Rows {
		y := header + float64(r.Index)*cfg.CellHeight
		fmt.Fprintf(&b, `    <line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n", svgNum(y), svgNum(p.Width), svgNum(y), svgGridStroke)
		fmt.Fprintf(&b, `    <text x="%s" y="%s" fill="%s">%s</text>`+"\n",
			svgNum(cfg.LabelColumnWidth+8), svgNum(y+cfg.CellHeight/2), svgColor(r.Color), html.EscapeString(r.Name))
	}
	b.WriteString("  </g>\n")

	fmt.Fprintf(&b, `  <g class="overlay" transform="translate(0 %s)">`+"\n", svgNum(cfg.CellHeight))
	for _, c := range p.Connectors {
		fmt.Fprintf(&b, `    <path id="%s" d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			html.EscapeString(c.ID), c.Path.SVG(), svgColor(c.Color))
	}
	for _, n := range p.Nodes {
		fmt.Fprintf(&b, `    <circle cx="%s" cy="%s" r="%s" fill="%s" data-status="%s"><title>%s</title></circle>`+"\n",
			svgNum(n.X), svgNum(n.Y), svgNum(cfg.NodeSize/2), svgColor(n.Color), n.Status, html.EscapeString(n.Name))
	}
	b.WriteString("  </g>\n")

	b.WriteString("</svg>\n")
	return b.String()
}

func svgNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func svgColor(c string) string {
	if c == "" {
		return svgTextFill
	}
	return html.EscapeString(c)
}
