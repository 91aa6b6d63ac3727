// Package playlist turns normalized clips into the ordered sequence handed to
// concat.
//
// BuildClips normalizes catalog items strictly in order and reports progress
// after each one. Natural keeps every usable clip once. FixedTarget cycles the
// clip list, appending whole clips until the running total reaches the
// target; it never trims a clip and never spins on an empty or zero-length
// list.
package playlist
