// Package stack tracks the stacking order of open modal windows.
// It assigns each visible layer a 0-based position (bottom to top),
// re-promotes layers that are shown again, and notifies listeners when a
// removal shifts the layers above it down by one.
package stack
