package main

import (
	"github.com/spf13/cobra"

	"igclient/pkg/instagram"
)

// sessionClient creates a client and adopts the stored session of the
// configured account when there is one. Without it the client stays
// anonymous.
func sessionClient(cmd *cobra.Command) (*instagram.Client, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	if cfg.Instagram.Username != "" {
		if err := client.Resume(cmd.Context()); err != nil {
			log.WithError(err).Warn("continuing without a session")
		}
	}
	return client, nil
}

// runQuery runs fn with a client and prints its result
func runQuery(fn func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := sessionClient(cmd)
		if err != nil {
			return err
		}

		result, err := fn(cmd, client, args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}
}
