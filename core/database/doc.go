// Package database handles the optional build-history database connection.
//
// It wraps GORM to configure a MySQL connection from the application's
// configuration. The connection is strictly optional: when it is absent or
// fails, builds proceed without history recording.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("build history disabled", zap.Error(err))
//	}
package database
