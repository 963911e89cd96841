// Package columnar is the table codec: it turns Parquet bytes into Arrow tables and back.
//
// Tables are held fully in memory between Decode and Encode. Column order, names and
// Arrow types are preserved across a round trip.
package columnar
