package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// addressFlag accepts "host:port" or ":port". The host may be a name or an IP.
type addressFlag string

func (a *addressFlag) String() string {
	return string(*a)
}

func (a *addressFlag) Set(s string) error {
	_, port, err := net.SplitHostPort(s)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}

	*a = addressFlag(s)
	return nil
}

// parseFlags reads the server's command line. Unset flags stay zero so that
// lower-priority sources can fill them.
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	fs := flag.NewFlagSet("uid-panel-server", flag.ContinueOnError)

	var address addressFlag
	fs.Var(&address, "a", "listen address, host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file")

	fs.StringVar(&cfg.App.SessionSignKey, "session-sign-key", "", "session token signing key")
	fs.StringVar(&cfg.App.SessionIssuer, "session-issuer", "", "session token issuer")
	fs.DurationVar(&cfg.App.SessionDuration, "session-duration", 0, "session lifetime, e.g. 12h")
	fs.StringVar(&cfg.App.APIKeyHashKey, "api-key-hash-key", "", "integration API key hashing secret")
	fs.StringVar(&cfg.App.DefaultRegion, "default-region", "", "region sent to the bypass service when none is given")

	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "inbound request timeout")
	fs.BoolVar(&cfg.Server.SecureCookies, "secure-cookies", false, "mark the session cookie Secure")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "bypass service call timeout")
	fs.DurationVar(&cfg.Workers.ActivityCleanupInterval, "cleanup-interval", 0, "activity purge interval, 0 disables it")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.Server.HTTPAddress = address.String()

	return cfg, nil
}
