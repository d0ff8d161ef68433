package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/cybervault/internal/flagx"
)

var ownFlags = []string{
	"-a", "-d", "-k", "-l",
	"-m", "-s", "-o", "-n", "-w", "-f", "-t", "-x",
	"-z", "-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., "127.0.0.1:59999")
//	-d string   PostgreSQL DSN
//	-k string   server master key file
//	-l string   log level
//	-m          enable sending mail (bool; use -m or -m=false)
//	-s string   SMTP host
//	-o int      SMTP port
//	-n string   SMTP username
//	-w string   SMTP password
//	-f string   SMTP sender address
//	-t int      SMTP timeout, seconds
//	-x string   public host shown in mail footers
//	-z          enable the S3 vault archive (bool)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only the flags above are picked out of args, so -c/-config and test
// runner flags pass through untouched. -t overrides the timeout only
// when given, so sub-second values from env or JSON survive. Invalid
// values panic.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.KeyFile, "k", config.KeyFile, "server master key file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.BoolVar(&config.MailEnabled, "m", config.MailEnabled, "send mail over SMTP")
	fs.StringVar(&config.SMTPHost, "s", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "o", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUsername, "n", config.SMTPUsername, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "w", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.SMTPSender, "f", config.SMTPSender, "SMTP sender address")
	smtpTimeout := fs.Int("t", int(config.SMTPTimeout.Seconds()), "SMTP timeout (in seconds)")
	fs.StringVar(&config.PublicHost, "x", config.PublicHost, "public host shown in mail")

	fs.BoolVar(&config.ArchiveEnabled, "z", config.ArchiveEnabled, "archive overwritten vault blobs to S3")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SMTPTimeout = time.Duration(*smtpTimeout) * time.Second
		}
	})
}
