// Package database handles the optional journal database connection.
//
// It wraps GORM to open either a MySQL server or a SQLite file, chosen by Config.Driver.
// An empty driver means the journal is disabled and Connect returns ErrDisabled; callers
// log a warning and keep running without persisted history.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Journal disabled", zap.Error(err))
//	}
package database
