// Package reference holds the static coefficient tables the move estimate is computed from.
//
// A Table is versioned as a unit: the truck breakpoints and plan thresholds are calibrated against
// the volume and packing coefficients of the same table, so one estimate must never mix values
// from two tables. Tables are authored as YAML presets embedded in the binary and exposed through
// a Registry keyed by version.
package reference
