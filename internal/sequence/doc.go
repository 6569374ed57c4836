// Package sequence runs an ordered list of named steps one at a time,
// stopping at the first error. A running step may remove steps that have not
// been reached yet; it cannot reorder or insert them.
package sequence
