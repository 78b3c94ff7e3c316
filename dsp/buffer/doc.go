// Package buffer provides a planar multichannel float32 buffer for
// allocation-free block processing. Callers size a Buffer once when the
// stream geometry is known and reuse it for every block; the per-channel
// views are plain []float32 slices into one contiguous backing array.
package buffer
