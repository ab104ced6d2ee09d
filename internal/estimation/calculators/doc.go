// Package calculators provides concrete Calculator implementations for the estimation engine.
//
// Each calculator covers one stage of a move estimate (e.g. volume aggregation, truck sizing, labor hours).
// Coefficients come from the reference table attached to the worksheet; functional options override them
// for a single calculator instance.
package calculators
