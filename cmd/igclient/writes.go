package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"igclient/pkg/instagram"
)

var replyTo string

// writeCommand builds a command that needs a logged in session
func writeCommand(use, short string, nargs int, fn func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.Resume(cmd.Context()); err != nil {
				return fmt.Errorf("%w (run 'igclient login' first)", err)
			}

			result, err := fn(cmd, client, args)
			if err != nil {
				return err
			}
			if result == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func init() {
	likeCmd := writeCommand("like <media-id>", "Like a media", 1,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return nil, client.Like(cmd.Context(), args[0])
		})
	unlikeCmd := writeCommand("unlike <media-id>", "Remove a like", 1,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return nil, client.Unlike(cmd.Context(), args[0])
		})
	commentCmd := writeCommand("comment <media-id> <text>", "Comment on a media", 2,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return client.AddComment(cmd.Context(), args[0], args[1], replyTo)
		})
	commentCmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the comment to reply to")
	deleteCommentCmd := writeCommand("delete-comment <media-id> <comment-id>", "Delete a comment", 2,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return nil, client.DeleteComment(cmd.Context(), args[0], args[1])
		})
	followCmd := writeCommand("follow <account-id>", "Follow an account", 1,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return nil, client.Follow(cmd.Context(), args[0])
		})
	unfollowCmd := writeCommand("unfollow <account-id>", "Stop following an account", 1,
		func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
			return nil, client.Unfollow(cmd.Context(), args[0])
		})

	rootCmd.AddCommand(likeCmd, unlikeCmd, commentCmd, deleteCommentCmd, followCmd, unfollowCmd)
}
