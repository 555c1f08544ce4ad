// Package store provides the persistence port for shipcheck profiles.
//
// A profile holds four named records (steps, tests, artifacts, status). The
// port is a plain key-value contract:
//   - Get returns the stored bytes and whether the key exists
//   - Set replaces the whole value for a key; there is no field merge
//
// Two implementations exist. Store is SQLite-backed, one database file per
// profile. Memory is an in-process map used by tests.
//
// Records layers typed access on top of any KV. Absent records decode to
// their empty default. Records that exist but fail to decode are reported
// as ErrCorruptRecord rather than silently reset, so the next write cannot
// clobber data the user may still want.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Every write bumps a per-database seq counter. Watchers compare LastSeq to
// detect changes made by another process.
package store
