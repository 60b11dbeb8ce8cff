// Package resolve turns per-column classifications into a ResolvedMapping in
// which every target field is claimed by at most one column.
//
// Within a group of columns claiming the same field the one with the highest
// confidence stays mapped; ties go to the column that appears first in the
// file. The losers are downgraded to rejected. Resolve is pure and
// idempotent.
package resolve
