package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iliyamo/bike-catalog-admin/internal/auth"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminSetPasswordCmd())
	cmd.AddCommand(newAdminListCmd())
	cmd.AddCommand(newAdminHashPasswordCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Example: `  server admin create --username admin
  server admin create --username admin --password 's3cret'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("--username is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = promptPassword(); err != nil {
					return err
				}
			}
			hash, err := auth.NewHasher(cfg.BcryptCost).Hash(password)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			admin, err := repository.NewAdminRepo(db).Create(cmd.Context(), username, hash)
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("admin %q already exists", username)
			}
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"id": admin.ID, "username": admin.Username}).Info("admin created")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (prompted when omitted)")
	return cmd
}

func newAdminSetPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set-password <username>",
		Short: "Replace an admin's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = promptPassword(); err != nil {
					return err
				}
			}
			hash, err := auth.NewHasher(cfg.BcryptCost).Hash(password)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			err = repository.NewAdminRepo(db).UpdatePassword(cmd.Context(), args[0], hash)
			if errors.Is(err, repository.ErrAdminNotFound) {
				return fmt.Errorf("admin %q does not exist", args[0])
			}
			if err != nil {
				return err
			}
			logrus.WithField("username", args[0]).Info("password updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (prompted when omitted)")
	return cmd
}

func newAdminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			admins, err := repository.NewAdminRepo(db).List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tCREATED")
			for _, a := range admins {
				fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Username, a.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

// hash-password needs no database; it prints a hash suitable for seeding
// admin_users by hand.
func newAdminHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := promptPassword()
				if err != nil {
					return err
				}
				password = p
			}
			hash, err := auth.NewHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")
	return cmd
}

// promptPassword reads a password twice from the terminal without echo.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password given and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(first), nil
}
