// Package timeline projects a stakeholder hierarchy onto a 12-month grid.
//
// Each entity gets one row, each activity becomes a node placed by its
// deadline, and each resolvable dependency becomes an orthogonal connector
// between two nodes. Projection is pure and never fails: anything that
// cannot be placed is left out and recorded in Projection.Omitted.
package timeline
