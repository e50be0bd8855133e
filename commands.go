package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-backend/internal/platform/auth"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema for the configured driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := ensureDataDirs(cfg); err != nil {
				return err
			}
			conn, err := db.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer conn.Close()
			return db.Migrate(cmd.Context(), conn, cfg.DB.Driver)
		},
	}
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage staff accounts",
	}

	var role string
	create := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a staff account (password is read from the terminal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			conn, err := db.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer conn.Close()

			issuer := auth.NewIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
			if err := auth.NewService(conn, issuer).Register(cmd.Context(), args[0], password, role); err != nil {
				return err
			}
			log.Printf("[INFO] account %s created", args[0])
			return nil
		},
	}
	create.Flags().StringVar(&role, "role", auth.RoleLibrarian, "admin | librarian")
	cmd.AddCommand(create)
	return cmd
}

// readPassword は端末からエコーなしで2回読む。
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("password must be entered from a terminal")
	}
	out := cmd.ErrOrStderr()

	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	fmt.Fprint(out, "Confirm: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Signed access tokens",
	}

	var role string
	issue := &cobra.Command{
		Use:   "issue <subject>",
		Short: "Print a signed token for subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tok, err := auth.NewIssuer([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL).Issue(args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().StringVar(&role, "role", auth.RoleLibrarian, "admin | librarian")
	cmd.AddCommand(issue)
	return cmd
}
