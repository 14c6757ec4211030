// Package lsystem implements Lindenmayer systems: parallel grammar
// rewriting with deterministic, stochastic, context-sensitive, and
// parametric productions, plus a 3D turtle interpreter that turns
// derived words into line segments and polygons for an external
// renderer.
//
// Derivation and geometry building are synchronous and CPU-bound. An
// engine owns its seeded RNG, so a given seed reproduces a derivation
// bit for bit; a configurable word-length cap guards against
// exponential growth.
package lsystem
