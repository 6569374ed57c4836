// Package tree builds filtered in-memory snapshots of a directory tree. The
// builder uses it to decide archive entries and the generator to list what it
// created.
package tree
