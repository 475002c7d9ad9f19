// Package stack computes layered bands for charts that draw several series
// on a shared baseline: stacked bars, stacked areas and stacked radars. It
// also provides the sequential running total behind waterfall charts.
//
// # Stacking
//
// An [Accumulator] keeps one running total per [Key] and sign. Positive and
// negative values grow away from zero in opposite directions, so a category
// holding +10 and -5 yields one band above the baseline and one below it
// rather than a single +5 band.
//
// Missing values (NaN) are stacked as an explicit zero: they produce an
// empty band at the current total and keep the band sequence intact.
//
// # Render order
//
// The order in which series are accumulated is part of the visual result.
// Bars and areas are accumulated in reverse declaration order so that the
// first declared series is painted last and ends on top; radars are
// accumulated in declaration order. [Order] captures both.
//
// # Waterfall
//
// [Waterfall] carries a single total across categories. See [StepKind] for
// the transitions and [Connector] for how adjacent bars are joined.
package stack
