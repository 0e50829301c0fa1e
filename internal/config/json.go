package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/authmaint/internal/flagx"
	"github.com/dmitrijs2005/authmaint/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration, which accepts both string values such as "30m" and integer
// nanoseconds. After unmarshalling, its fields are copied into the runtime
// Config struct.
type JsonConfig struct {
	DatabaseDSN           string         `json:"database_dsn"`
	AdminAddr             string         `json:"admin_addr"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BatchSize             int            `json:"batch_size"`
	LogFile               string         `json:"log_file"`
	LogMaxSizeMB          int            `json:"log_max_size_mb"`
	LogMaxBackups         int            `json:"log_max_backups"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson overlays configuration from the JSON file named by the -c or
// -config flags. Absent flags mean no file is loaded. Zero values in the
// file leave the corresponding Config fields untouched, so a partial file
// only overrides what it names. Unreadable or invalid files panic: a config
// file that was explicitly requested must be usable.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.AdminAddr != "" {
		config.AdminAddr = c.AdminAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BatchSize != 0 {
		config.BatchSize = c.BatchSize
	}
	if c.LogFile != "" {
		config.LogFile = c.LogFile
	}
	if c.LogMaxSizeMB != 0 {
		config.LogMaxSizeMB = c.LogMaxSizeMB
	}
	if c.LogMaxBackups != 0 {
		config.LogMaxBackups = c.LogMaxBackups
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
