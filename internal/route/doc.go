// Package route defines the normalized routing rule model and the pure
// translation from IngressRoute objects into it.
//
// # Model
//
// One IngressRoute object normalizes to one RuleSet. A RuleSet carries an
// ordered list of Rules (source order, first match wins) plus an optional
// default Rule used when none of the listed Rules match. A Rule constrains
// requests by host, by path prefix, by both, or by neither; a Rule with
// neither constraint never matches and is only reachable as a default.
//
// # Path matching
//
// Paths are compared as segment sequences, not as strings. A prefix matches
// a request path when every one of its segments equals the corresponding
// request segment; a prefix longer than the request path never matches.
// Segment comparison is exact, with no wildcards or case folding.
//
// Translation is a pure function with no I/O and no error path: malformed
// input produces absent fields, and an object without a spec produces no
// RuleSet at all.
package route
