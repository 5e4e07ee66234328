package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultCleanupDays = 2

func newRootCmd(op *operator) *cobra.Command {
	root := &cobra.Command{
		Use:           "uidctl",
		Short:         "go-uid-panel operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd(op))
	root.AddCommand(newMigrateCmd(op))
	root.AddCommand(newCreateOwnerCmd(op))
	root.AddCommand(newCleanupActivityCmd(op))
	return root
}

func newVersionCmd(op *operator) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uidctl %s\n", op.buildInfo)
		},
	}
}

func newMigrateCmd(op *operator) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := op.migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is at version %d\n", version)
			return nil
		},
	}
}

func newCreateOwnerCmd(op *operator) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "create-owner",
		Short: "Create the owner account",
		Long:  "Create an owner account. The password is prompted for, or read from stdin when it is piped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := op.readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errEmptyPassword
			}

			services, closer, err := op.openServices(cmd.Context())
			if err != nil {
				return fmt.Errorf("create-owner: %w", err)
			}
			defer closer.Close()

			user, err := services.UserService.CreateOwner(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("create-owner: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "owner %q created with id %d\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Owner login name")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newCleanupActivityCmd(op *operator) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup-activity",
		Short: "Archive and delete old activity entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, closer, err := op.openServices(cmd.Context())
			if err != nil {
				return fmt.Errorf("cleanup-activity: %w", err)
			}
			defer closer.Close()

			res, err := services.ActivityService.Purge(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("cleanup-activity: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", res.Deleted)
			if res.ArchiveObject != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "archived to %s\n", res.ArchiveObject)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", defaultCleanupDays, "Delete entries older than this many days")

	return cmd
}
