// Package testutil holds shared test helpers: golden file assertions and an
// in-memory option store.
package testutil
