// Package plugin adapts the sparkle block processor to a host: it owns the
// parameter tree, negotiates the channel layout and forwards the host's
// prepare, process and release calls.
//
// Plugin format bindings, GUI and state persistence are left to the host
// integration; State and SetState are empty.
package plugin
