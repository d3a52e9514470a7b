package app

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/db/controller/user"
	"github.com/fortuna-social/settings-service/internal/db/models"
	"github.com/fortuna-social/settings-service/internal/uniuri"
)

func init() { //nolint: gochecknoinits
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userRole, "role", models.RoleUser, "application role")
	userGrantCmd.Flags().BoolVar(&userSuperAdmin, "super-admin", false, "also set the super admin flag")
	userIssueTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")

	userCmd.AddCommand(userListCmd, userCreateCmd, userGrantCmd, userRevokeCmd, userIssueKeyCmd, userIssueTokenCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	userName       string
	userEmail      string
	userRole       string
	userSuperAdmin bool
	tokenTTL       time.Duration

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage the users settings writes are authorized against",
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}

			users, err := user.GetAll(gormDB)
			if err != nil {
				return err //nolint:wrapcheck
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0) //nolint:mnd
			_, _ = fmt.Fprintln(w, "TOKEN IDENTIFIER\tROLE\tSUPER ADMIN\tAPI KEY")

			for _, u := range users {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", u.TokenIdentifier, u.Role, u.IsSuperAdmin, u.APIKeyHash != "")
			}

			return w.Flush() //nolint:wrapcheck
		},
	}

	userCreateCmd = &cobra.Command{
		Use:   "create <token-identifier>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}

			u := &models.User{TokenIdentifier: args[0], Name: userName, Email: userEmail, Role: userRole}
			if err = user.Create(gormDB, u); err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user %s with role %s\n", u.TokenIdentifier, u.Role)

			return err //nolint:wrapcheck
		},
	}

	userGrantCmd = &cobra.Command{
		Use:   "grant <token-identifier>",
		Short: "Grant the admin role",
		Long: `Grant the admin role. The super admin flag is only changed when
--super-admin is given explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var superAdmin *bool
			if cmd.Flags().Changed("super-admin") {
				superAdmin = &userSuperAdmin
			}

			return setRole(cmd, args[0], models.RoleAdmin, superAdmin)
		},
	}

	userRevokeCmd = &cobra.Command{
		Use:   "revoke <token-identifier>",
		Short: "Revoke the admin role and the super admin flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revoked := false

			return setRole(cmd, args[0], models.RoleUser, &revoked)
		},
	}

	userIssueKeyCmd = &cobra.Command{
		Use:   "issue-key <token-identifier>",
		Short: "Issue a local API key, replacing any previous key",
		Long: `Issue a local API key for an existing user. The key is printed once;
only an Argon2id hash of its secret is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := openDB()
			if err != nil {
				return err
			}

			secret := uniuri.New()

			hash, err := models.HashAPIKey(secret)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err = user.SetAPIKeyHash(gormDB, args[0], hash); err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), auth.FormatAPIKey(args[0], secret))

			return err //nolint:wrapcheck
		},
	}

	userIssueTokenCmd = &cobra.Command{
		Use:   "issue-token <subject>",
		Short: "Sign a first-party JWT for subject with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := auth.NewJWTProvider(&cfg.Auth.JWT)
			if err != nil {
				return err //nolint:wrapcheck
			}

			token, err := p.Issue(args[0], tokenTTL)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err //nolint:wrapcheck
		},
	}
)

func setRole(cmd *cobra.Command, tokenIdentifier, role string, superAdmin *bool) error {
	gormDB, err := openDB()
	if err != nil {
		return err
	}

	u, err := user.SetRole(gormDB, tokenIdentifier, role, superAdmin)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %s: role=%s super_admin=%t\n", u.TokenIdentifier, u.Role, u.IsSuperAdmin)

	return err //nolint:wrapcheck
}
