// Package config provides configuration management for the icon builder.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: logging level, format, and optional log file
//   - Cache: resource cache root and CDN endpoints
//   - SDE: static data export source
//   - Storage: S3/MinIO credentials for artifact publishing
//   - Database: optional build-history MySQL connection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Cache.Root)
package config
