package main

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"igclient/pkg/verify"
)

var forceLogin bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in with the configured username and password and store the session.

A stored session that is still valid is reused unless --force is given.
When Instagram asks for a security code you are prompted for the delivery
method and the code.`,
	Example: `  # Log in, prompting for the password
  igclient login -u myusername

  # Ignore the stored session
  igclient login -u myusername --force`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().BoolVarP(&forceLogin, "force", "f", false, "log in again even if the stored session is valid")
}

func runLogin(cmd *cobra.Command, args []string) error {
	if cfg.Instagram.Username == "" {
		return fmt.Errorf("no username configured, use --username or IGCLIENT_USERNAME")
	}

	if cfg.Instagram.Password == "" {
		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}
		cfg.Instagram.Password = password
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	verifier := verify.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	if err := client.Login(cmd.Context(), forceLogin, verifier); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (id %s)\n", cfg.Instagram.Username, client.UserID())
	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password configured and stdin is not a terminal")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password for %s: ", cfg.Instagram.Username)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	return password, nil
}

