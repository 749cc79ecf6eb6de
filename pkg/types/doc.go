// Package types defines the domain model shared by the speedarch packages:
// games and their embedded collections, runs, the tool configuration, and
// the standard errors.
// See docs/ARCHITECTURE.md § Domain Model.
package types
