// Package derive computes filtered views and aggregates from entity snapshots.
//
// Every function is pure: snapshots are read, never modified, and malformed
// criteria behave as if they were absent.
package derive
