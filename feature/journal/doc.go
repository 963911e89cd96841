// Package journal records compaction runs in a relational database.
//
// Every non-dry run is stored as one compaction_runs row plus one
// compaction_groups row per merge group. The journal is an audit trail only:
// a failure to record never fails the run that produced it.
//
// The database is optional. Without one the feature is disabled and the
// history command reports that no journal is configured.
//
// # HTTP Endpoints
//
//   - GET /runs : List recent runs (filters: username, database, table, limit).
//   - GET /runs/:id : Get one run with its group outcomes.
package journal
