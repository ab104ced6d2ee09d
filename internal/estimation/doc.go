// Package estimation turns one household snapshot into a range-valued move estimate.
//
// Each stage of the estimate is encapsulated in one specific Calculator. The Engine runs the calculators in
// registration order over a shared Worksheet and returns the Result they fill in.
package estimation
