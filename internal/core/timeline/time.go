// Package timeline provides the simulation clock primitives: the Time
// unit and a monotone event queue ordered by radix distance.
package timeline

// Time is a point on the simulation clock, in milliseconds.
//
// Simulated time starts at zero and only moves forward. Durations and
// delays use the same unit, so arithmetic stays in plain integers.
type Time uint32
