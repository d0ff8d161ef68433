package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envVar binds one or more variable names to a Config field. The first name
// is the canonical one; the rest are the names used by older deployments.
type envVar struct {
	names []string
	set   func(c *Config, v string) error
}

var envVars = []envVar{
	{[]string{"CV_ENDPOINT_ADDR_GRPC"}, setString(func(c *Config) *string { return &c.EndpointAddrGRPC })},
	{[]string{"CV_DATABASE_DSN", "DATABASE_URL"}, setString(func(c *Config) *string { return &c.DatabaseDSN })},
	{[]string{"CV_KEY_FILE", "SERVER_KEY_FILE"}, setString(func(c *Config) *string { return &c.KeyFile })},
	{[]string{"CV_LOG_LEVEL"}, setString(func(c *Config) *string { return &c.LogLevel })},
	{[]string{"CV_MAIL_ENABLED"}, setBool(func(c *Config) *bool { return &c.MailEnabled })},
	{[]string{"CV_SMTP_HOST", "SMTP_SERVER"}, setString(func(c *Config) *string { return &c.SMTPHost })},
	{[]string{"CV_SMTP_PORT", "SMTP_PORT"}, setInt(func(c *Config) *int { return &c.SMTPPort })},
	{[]string{"CV_SMTP_USERNAME"}, setString(func(c *Config) *string { return &c.SMTPUsername })},
	{[]string{"CV_SMTP_PASSWORD", "SMTP_SENDER_PASSWORD"}, setString(func(c *Config) *string { return &c.SMTPPassword })},
	{[]string{"CV_SMTP_SENDER", "SMTP_SENDER_EMAIL"}, setString(func(c *Config) *string { return &c.SMTPSender })},
	{[]string{"CV_SMTP_TIMEOUT"}, setDuration(func(c *Config) *time.Duration { return &c.SMTPTimeout })},
	{[]string{"CV_PUBLIC_HOST"}, setString(func(c *Config) *string { return &c.PublicHost })},
	{[]string{"CV_ARCHIVE_ENABLED"}, setBool(func(c *Config) *bool { return &c.ArchiveEnabled })},
	{[]string{"CV_S3_ROOT_USER"}, setString(func(c *Config) *string { return &c.S3RootUser })},
	{[]string{"CV_S3_ROOT_PASSWORD"}, setString(func(c *Config) *string { return &c.S3RootPassword })},
	{[]string{"CV_S3_BUCKET"}, setString(func(c *Config) *string { return &c.S3Bucket })},
	{[]string{"CV_S3_REGION"}, setString(func(c *Config) *string { return &c.S3Region })},
	{[]string{"CV_S3_BASE_ENDPOINT"}, setString(func(c *Config) *string { return &c.S3BaseEndpoint })},
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is fine; a broken one
// panics like a broken JSON config does.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays environment variables onto config. The canonical name
// wins over a legacy alias. Unparsable values panic.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	for _, ev := range envVars {
		for _, name := range ev.names {
			v, ok := lookup(name)
			if !ok || v == "" {
				continue
			}
			if err := ev.set(config, v); err != nil {
				panic(name + ": " + err.Error())
			}
			break
		}
	}
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func setDuration(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = d
		return nil
	}
}
