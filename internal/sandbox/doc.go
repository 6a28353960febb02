// Package sandbox executes user-supplied transformation code against a
// frame. Code is a single HCL expression evaluated over bound variables
// (the upstream rows, columns, and per-row cells) with a restricted
// function table — there is no ambient capability to reach the host.
//
// Two independent guarantees live here: pre-execution syntax validation
// (parse only, never evaluates, used for live editor feedback) and the
// execution contract (the expression must produce a value shaped exactly
// like a frame, validated strictly after evaluation).
package sandbox
