package main

import (
	"strings"

	"github.com/spf13/cobra"

	"igclient/pkg/instagram"
)

var (
	count        int
	maxID        string
	minTimestamp int64
	top          bool
	byID         bool
	tagged       bool
	pageSize     int
	delayed      bool
)

var accountCmd = &cobra.Command{
	Use:   "account <username>",
	Short: "Show an account profile",
	Example: `  igclient account kevin
  igclient account 3 --id`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		if byID {
			return client.GetAccountByID(cmd.Context(), args[0])
		}
		return client.GetAccount(cmd.Context(), args[0])
	}),
}

var mediasCmd = &cobra.Command{
	Use:   "medias <username>",
	Short: "List the recent medias of an account",
	Args:  cobra.ExactArgs(1),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		if byID {
			return client.GetMediasByUserID(cmd.Context(), args[0], count, maxID)
		}
		return client.GetMedias(cmd.Context(), args[0], count, maxID)
	}),
}

var mediaCmd = &cobra.Command{
	Use:   "media <code|id|url>",
	Short: "Show one media",
	Long: `Show one media, addressed by shortcode, numeric id or public link.
With --tagged only the tagged accounts are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		ref := args[0]
		switch {
		case tagged:
			return client.GetMediaTaggedUsersByCode(cmd.Context(), ref)
		case strings.Contains(ref, "://"):
			return client.GetMediaByURL(cmd.Context(), ref)
		case isNumericID(ref):
			return client.GetMediaByID(cmd.Context(), ref)
		default:
			return client.GetMediaByCode(cmd.Context(), ref)
		}
	}),
}

var commentsCmd = &cobra.Command{
	Use:   "comments <code>",
	Short: "List the comments of a media",
	Args:  cobra.ExactArgs(1),
	RunE: runResumable("comments", func(cmd *cobra.Command, client *instagram.Client, key, cursor string, skip int) (listing, error) {
		page, err := client.GetMediaCommentsByCode(cmd.Context(), key, resumeCount(count, skip), cursor)
		if err != nil {
			return listing{}, err
		}
		page.Comments = dropFirst(page.Comments, skip)
		return listing{page, page.NextPage, page.PageOffset, page.HasNextPage, len(page.Comments)}, nil
	}),
}

var likesCmd = &cobra.Command{
	Use:   "likes <code>",
	Short: "List the accounts that liked a media",
	Args:  cobra.ExactArgs(1),
	RunE: runResumable("likes", func(cmd *cobra.Command, client *instagram.Client, key, cursor string, skip int) (listing, error) {
		page, err := client.GetMediaLikesByCode(cmd.Context(), key, resumeCount(count, skip), cursor)
		if err != nil {
			return listing{}, err
		}
		page.Accounts = dropFirst(page.Accounts, skip)
		return listing{page, page.NextPage, page.PageOffset, page.HasNextPage, len(page.Accounts)}, nil
	}),
}

var tagCmd = &cobra.Command{
	Use:   "tag <name>",
	Short: "List the medias of a hashtag",
	Example: `  igclient tag youneverknow --count 20
  igclient tag youneverknow --min-timestamp 1700000000
  igclient tag youneverknow --top`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		name := strings.TrimPrefix(args[0], "#")
		if top {
			return client.GetCurrentTopMediasByTagName(cmd.Context(), name)
		}
		return client.GetMediasByTag(cmd.Context(), name, count, maxID, minTimestamp)
	}),
}

var locationCmd = &cobra.Command{
	Use:   "location <id>",
	Short: "Show a location, or list its medias with --count",
	Args:  cobra.ExactArgs(1),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		switch {
		case top:
			return client.GetCurrentTopMediasByLocationID(cmd.Context(), args[0])
		case cmd.Flags().Changed("count"):
			return client.GetMediasByLocationID(cmd.Context(), args[0], count, maxID)
		default:
			return client.GetLocationByID(cmd.Context(), args[0])
		}
	}),
}

var followersCmd = &cobra.Command{
	Use:   "followers <account-id>",
	Short: "List the followers of an account",
	Args:  cobra.ExactArgs(1),
	RunE: runResumable("followers", func(cmd *cobra.Command, client *instagram.Client, key, cursor string, skip int) (listing, error) {
		page, err := client.GetFollowers(cmd.Context(), key, followOptions(cursor, skip))
		if err != nil {
			return listing{}, err
		}
		page.Accounts = dropFirst(page.Accounts, skip)
		return listing{page, page.NextPage, page.PageOffset, page.HasNextPage, len(page.Accounts)}, nil
	}),
}

var followingCmd = &cobra.Command{
	Use:   "following <account-id>",
	Short: "List the accounts an account follows",
	Args:  cobra.ExactArgs(1),
	RunE: runResumable("following", func(cmd *cobra.Command, client *instagram.Client, key, cursor string, skip int) (listing, error) {
		page, err := client.GetFollowing(cmd.Context(), key, followOptions(cursor, skip))
		if err != nil {
			return listing{}, err
		}
		page.Accounts = dropFirst(page.Accounts, skip)
		return listing{page, page.NextPage, page.PageOffset, page.HasNextPage, len(page.Accounts)}, nil
	}),
}

var storiesCmd = &cobra.Command{
	Use:   "stories [reel-id...]",
	Short: "Show live stories, by default those of your reel tray",
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		return client.GetStories(cmd.Context(), args)
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search <users|tags> <query>",
	Short: "Search accounts or hashtags",
	Args:  cobra.ExactArgs(2),
	RunE: runQuery(func(cmd *cobra.Command, client *instagram.Client, args []string) (any, error) {
		if args[0] == "tags" {
			return client.SearchTagsByTagName(cmd.Context(), args[1])
		}
		return client.SearchAccountsByUsername(cmd.Context(), args[1])
	}),
}

func followOptions(cursor string, skip int) instagram.FollowOptions {
	n := count
	if n == 0 && skip > 0 {
		n = pageSize
	}
	return instagram.FollowOptions{
		Count:     resumeCount(n, skip),
		PageSize:  pageSize,
		EndCursor: cursor,
		Delayed:   delayed,
	}
}

func isNumericID(s string) bool {
	head, _, _ := strings.Cut(s, "_")
	if head == "" {
		return false
	}
	for _, r := range head {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func init() {
	for _, cmd := range []*cobra.Command{mediasCmd, commentsCmd, likesCmd, tagCmd, locationCmd, followersCmd, followingCmd} {
		cmd.Flags().IntVarP(&count, "count", "n", 20, "number of items, -1 for all")
		cmd.Flags().StringVar(&maxID, "max-id", "", "cursor to resume from")
	}
	for _, cmd := range []*cobra.Command{accountCmd, mediasCmd} {
		cmd.Flags().BoolVar(&byID, "id", false, "the argument is an account id")
	}
	for _, cmd := range []*cobra.Command{tagCmd, locationCmd} {
		cmd.Flags().BoolVar(&top, "top", false, "show the current top posts")
	}
	for _, cmd := range []*cobra.Command{followersCmd, followingCmd} {
		cmd.Flags().IntVar(&pageSize, "page-size", 20, "accounts per request")
		cmd.Flags().BoolVar(&delayed, "delayed", true, "pause between pages")
	}
	for _, cmd := range []*cobra.Command{commentsCmd, likesCmd, followersCmd, followingCmd} {
		cmd.Flags().BoolVar(&resume, "resume", false, "continue from the cursor saved by the previous run")
	}
	tagCmd.Flags().Int64Var(&minTimestamp, "min-timestamp", 0, "stop at the first media older than this unix time")
	mediaCmd.Flags().BoolVar(&tagged, "tagged", false, "list the tagged accounts instead")

	rootCmd.AddCommand(accountCmd, mediasCmd, mediaCmd, commentsCmd, likesCmd, tagCmd,
		locationCmd, followersCmd, followingCmd, storiesCmd, searchCmd)
}
