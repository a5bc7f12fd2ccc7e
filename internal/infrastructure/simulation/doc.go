// Package simulation implements the Monte Carlo cash-flow engine behind stress-test runs:
// path simulation, percentile based risk metrics and one-at-a-time driver ranking.
//
// Every run draws from a single PCG generator seeded with the run seed, so the same
// inputs and seed always produce the same paths.
package simulation
