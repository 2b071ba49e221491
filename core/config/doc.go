// Package config provides configuration management for the race admin service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each field as `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port and the default password used by resets and imports
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the export bucket
//   - Session: Redis URL and session lifetime
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
