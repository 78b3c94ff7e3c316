// Package biquad provides second-order IIR filter runtime primitives for
// float32 audio.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficients and delay
// state are kept in float64; samples are read and written as float32.
// A [Bank] holds one Section per channel so that multichannel streams keep
// independent filter memory while sharing one coefficient set.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
