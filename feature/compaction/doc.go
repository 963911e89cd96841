// Package compaction merges small time-stamped Parquet objects of one table into
// one object per time partition.
//
// Source objects live under {username}/{database}/{table}/ and are named
// {table}_{stamp}.parquet, where the stamp layout depends on the granularity that
// produced them. A run selects the sources inside a date range, buckets them by
// the partition key of the target granularity, and for every bucket:
//  1. Compactor: fetches and decodes the members, narrows them to their common
//     columns and appends them in timestamp order.
//  2. Publisher: writes the result to the destination key, first merging in any
//     object already stored there.
//  3. Reaper: deletes the members, only once the publication succeeded.
//
// A failure in one group never affects another. The worst outcome of a crash or
// partial failure is duplicated rows, never lost rows.
//
// # Granularities
//
//	hour   sources 2006-01-02_15-04  ->  user/db/table/2006/01/02/table_2006-01-02_15.parquet
//	day    sources 2006-01-02_15     ->  user/db/table/2006/01/table_2006-01-02.parquet
//	month  sources 2006-01-02        ->  user/db/table/2006/table_2006-01.parquet
//	year   sources 2006-01           ->  user/db/table/table_2006.parquet
//
// # HTTP Endpoints
//
//   - POST /compaction/run : Execute a run and return its summary.
//   - POST /compaction/plan : List merge groups without reading or writing objects.
package compaction
