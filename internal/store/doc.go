// Package store provides the SQLite-backed options store.
//
// Options are named values persisted across runs: plugin settings, the
// installed plugin version, activation flags. Each value is stored as
// canonical JSON so that an update with an equal value is detected and
// skipped without touching the row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Schema changes are tracked with PRAGMA user_version.
package store
