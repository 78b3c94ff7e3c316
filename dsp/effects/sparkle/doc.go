// Package sparkle implements the block processor of the Sparklelyzer effect:
// a highpass filter feeding a tanh saturator whose output is added back onto
// the dry signal, followed by a dry/wet crossfade.
//
// Per block and channel, with x the dry input:
//
//	h   = highpass(x)            // stateful, one filter per channel
//	s   = tanh(h * drive)
//	wet = x + s
//	y   = x*(1-mix) + wet*mix    // mix = mixPercent / 100
//
// The wet path is additive: at mix 100 % the output is x + s, not s alone,
// so the output is not bounded to [-1, 1]. At mix 0 % the output equals the
// input bit for bit.
//
// A [Processor] starts unprepared. [Processor.Prepare] binds it to a sample
// rate, a maximum block size and a channel count, allocating the filter bank
// and the scratch buffer; [Processor.Process] then runs without allocating.
// Calling Process before Prepare panics.
package sparkle
