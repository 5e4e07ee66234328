package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-uid-panel/internal/app"
	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/migrations"
	"github.com/MKhiriev/go-uid-panel/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errEmptyPassword = errors.New("password must not be empty")

// operator holds what the commands need from the outside world. Every
// dependency is a function so that configuration is loaded only by the
// commands that touch storage.
type operator struct {
	buildInfo models.AppBuildInfo

	openServices func(ctx context.Context) (*service.Services, io.Closer, error)
	migrate      func(ctx context.Context) (int64, error)
	readPassword func(cmd *cobra.Command, prompt string) (string, error)
}

func newOperator(buildInfo models.AppBuildInfo) *operator {
	log := logger.NewLoggerTo(os.Stderr, "uidctl")

	return &operator{
		buildInfo: buildInfo,
		openServices: func(ctx context.Context) (*service.Services, io.Closer, error) {
			cfg, err := config.GetOperatorConfig()
			if err != nil {
				return nil, nil, err
			}
			return app.OpenServices(ctx, cfg, log)
		},
		migrate: func(ctx context.Context) (int64, error) {
			cfg, err := config.GetOperatorConfig()
			if err != nil {
				return 0, err
			}
			db, err := app.OpenDatabase(ctx, cfg.Storage.DB, log)
			if err != nil {
				return 0, err
			}
			defer db.Close()

			if err = db.Migrate(ctx); err != nil {
				return 0, err
			}
			return migrations.Version(ctx, db.DB)
		},
		readPassword: promptPassword,
	}
}

// promptPassword reads a password without echo from a terminal, or one line
// from stdin when it is piped.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pass), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
