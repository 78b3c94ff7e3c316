// Package tone measures steady-state sinusoid levels in a signal.
//
// An Analyzer windows the last Size samples of a signal, transforms them
// with an FFT and integrates the power inside the window's main lobe around
// a probe frequency. The integrated power is independent of where the tone
// falls between two bins, so levels are accurate without scalloping
// correction. It is used to measure the gain and harmonic content a
// processor adds at a given frequency.
package tone
