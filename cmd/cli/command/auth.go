package command

import (
	"fmt"
	"time"

	"moviehub/cmd/cli/authentication"
	"moviehub/internal/middleware/auth"

	"github.com/spf13/cobra"
)

// auth.go handles authentication commands: login, logout, status and hash-password.

func newAuthCmd(opts *globalOptions) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
		Long:  `Authenticate with the MovieHub API server. The token is kept in the OS keyring.`,
	}

	var password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Get an access token for write commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := opts.publicClient().Login(password)
			if err != nil {
				return fmt.Errorf("login process failed: %w", err)
			}

			creds := &authentication.StoredCredentials{
				AccessToken: response.Token,
				APIURL:      opts.apiURL,
			}
			if response.ExpiresIn > 0 {
				creds.ExpiresAt = time.Now().Add(time.Duration(response.ExpiresIn) * time.Second).Unix()
			}
			if err := authentication.StoreTokens(creds); err != nil {
				return fmt.Errorf("could not store token: %w", err)
			}

			success(cmd.OutOrStdout(), "Successfully logged in!")
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Admin password, when the server requires one")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := authentication.DeleteTokens(); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Successfully logged out.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := authentication.GetTokens()
			if err != nil {
				warn(cmd.OutOrStdout(), err.Error())
				return nil
			}
			success(cmd.OutOrStdout(), "Logged in to %s", creds.APIURL)
			if creds.ExpiresAt != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	authCmd.AddCommand(loginCmd, logoutCmd, statusCmd, hashCmd)
	return authCmd
}
