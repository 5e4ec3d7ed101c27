// Package app is the composition root of the paramgridgo preview CLI: it
// wires the logger, the grid file loader, and the expansion engine behind
// a single Run entry point.
package app
