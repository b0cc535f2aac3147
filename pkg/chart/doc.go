// Package chart turns one chamber's score list into the numbers a bar chart
// needs: per-party aggregates and per-member proportional widths.
//
// # Aggregation
//
// [Aggregate] walks the records once and returns an [Aggregates] value:
// the total absolute score ("score space"), per-party member counts and
// score sums, and the majority party. A party with strictly more members is
// the majority; on a tie (including an empty chamber) the party holding the
// White House in the session's start year wins, see [congress.ExecutiveParty].
//
// # Layout
//
// [Layout] maps each record to a width fraction |score| / total and flags
// the first record with a strictly negative score, where the chart draws its
// zero line. The records' order is the visual order; nothing here sorts.
//
// When the total magnitude is zero (an empty chamber or all-zero scores),
// every fraction is exactly 0 instead of NaN.
//
// [Bars] converts fractions into pixel geometry for a given container width,
// reserving one pixel of gap per bar and a fixed slot for the zero line.
//
// All functions are pure and safe for concurrent use. Inputs are never
// modified.
package chart
