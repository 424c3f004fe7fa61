// Package journal provides an in-memory SQLite log of calculator transitions.
//
// A journal records, for one calculator session, every action the engine
// applied together with the state before and after it. Hosts use it to
// print a transition timeline (calc trace) and the test harness reads it
// back for trace assertions and golden snapshots.
//
// # Scope
//
// Journals are session-scoped working memory, not persistence: hosts open
// them on ":memory:" and everything is discarded on Close.
//
// # Ordering
//
//   - Every transition is stamped with a logical seq from a Sequencer,
//     never a wall-clock timestamp
//   - Reads are ordered by seq ASC
//   - (session_id, seq) is the primary key, so a replayed seq is rejected
//
// # Database Configuration
//
//   - Single connection: every ":memory:" connection is its own database
//   - foreign_keys=ON: transitions must reference a known session
package journal
