// Package scenario builds the preset body collections and turns a
// press-and-hold gesture into a new body.
//
// Each [Preset] fully replaces the collection and fixes the gravity flag and
// collision strategy; [Apply] hands both back to the caller, which owns the
// step configuration.
package scenario
