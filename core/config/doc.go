// Package config loads the compactor configuration.
//
// Values come from the environment, optionally seeded from a .env file. Every
// key has a default declared in the 'default' struct tag of its section.
//
// # Configuration Structure
//
//   - Server: HTTP listen port and API key (SERVER_PORT, SERVER_API_KEY)
//   - Storage: S3/MinIO endpoint, credentials and bucket (STORAGE_*)
//   - Log: level and format (LOG_LEVEL, LOG_FORMAT)
//   - Database: optional run journal; empty DATABASE_DRIVER disables it
//   - Compaction: default run parameters (COMPACTION_TABLE, COMPACTION_GRANULARITY, ...)
//   - Codec: compression and row group size of written objects (CODEC_*)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compaction.Granularity)
package config
