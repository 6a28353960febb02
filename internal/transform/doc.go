// Package transform implements the per-kind node executors. Every
// executor is a pure, total function from (frame, config) to frame: a
// node whose required config fields are still missing returns its input
// unchanged, so the canvas can preview live while the user fills in
// fields. Executors never mutate or alias the frame they are given.
package transform
