// Package design provides the IIR coefficient designers used by the effect:
// an RBJ cookbook highpass biquad and a bilinear one-pole highpass.
//
// The functions return coefficients consumable by dsp/filter/biquad. They
// are cheap enough to call once per audio block.
package design
