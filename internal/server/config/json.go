package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cybervault/internal/flagx"
	"github.com/dmitrijs2005/cybervault/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Only keys that
// are present override the layers below; booleans are pointers so that an
// explicit false can be told apart from a missing key.
type JsonConfig struct {
	EndpointAddrGRPC string          `json:"endpoint_addr_grpc"`
	DatabaseDSN      string          `json:"database_dsn"`
	KeyFile          string          `json:"key_file"`
	LogLevel         string          `json:"log_level"`
	MailEnabled      *bool           `json:"mail_enabled"`
	SMTPHost         string          `json:"smtp_host"`
	SMTPPort         int             `json:"smtp_port"`
	SMTPUsername     string          `json:"smtp_username"`
	SMTPPassword     string          `json:"smtp_password"`
	SMTPSender       string          `json:"smtp_sender"`
	SMTPTimeout      *timex.Duration `json:"smtp_timeout"`
	PublicHost       string          `json:"public_host"`
	ArchiveEnabled   *bool           `json:"archive_enabled"`
	S3RootUser       string          `json:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
}

// parseJson loads the file passed with -c or -config into config. Nothing
// happens when neither flag is given. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.KeyFile, c.KeyFile)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.SMTPHost, c.SMTPHost)
	overlay(&config.SMTPUsername, c.SMTPUsername)
	overlay(&config.SMTPPassword, c.SMTPPassword)
	overlay(&config.SMTPSender, c.SMTPSender)
	overlay(&config.PublicHost, c.PublicHost)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	if c.SMTPTimeout != nil {
		config.SMTPTimeout = c.SMTPTimeout.Duration
	}
	if c.MailEnabled != nil {
		config.MailEnabled = *c.MailEnabled
	}
	if c.ArchiveEnabled != nil {
		config.ArchiveEnabled = *c.ArchiveEnabled
	}
}
