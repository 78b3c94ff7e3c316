// Package param is the host-side parameter tree of the plugin.
//
// Parameters hold their plain value in an atomic word so the audio thread
// can read them without locks while a UI or automation thread writes. The
// normalized 0..1 mapping follows a skewed range, so a frequency control can
// spend most of its travel on the low end.
package param
