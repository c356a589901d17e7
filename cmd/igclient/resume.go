package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"igclient/pkg/checkpoint"
	"igclient/pkg/instagram"
)

var resume bool

// listing is one page of a resumable listing. offset counts the items
// after next that this run already printed.
type listing struct {
	result any
	next   string
	offset int
	more   bool
	items  int
}

// listingFunc fetches from cursor and drops the first skip items, which a
// previous run already printed
type listingFunc func(cmd *cobra.Command, client *instagram.Client, key, cursor string, skip int) (listing, error)

// runResumable runs a cursor listing. With --resume the saved cursor is used
// when --max-id is not given, and the cursor of the new page is saved for
// the next run. A finished listing drops its checkpoint.
func runResumable(name string, fn listingFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := sessionClient(cmd)
		if err != nil {
			return err
		}
		key := args[0]

		var store *checkpoint.Store
		cursor, skip := maxID, 0
		if resume {
			store, err = checkpoint.NewStore(filepath.Join(cfg.Session.Directory, "checkpoints"), log)
			if err != nil {
				return err
			}
			if cursor == "" {
				cp, err := store.Load(name, key)
				if err != nil {
					log.WithError(err).Warn("ignoring unreadable checkpoint")
				} else if cp != nil {
					cursor, skip = cp.Cursor, cp.Offset
				}
			}
		}

		page, err := fn(cmd, client, key, cursor, skip)
		if err != nil {
			return err
		}

		if store != nil {
			if page.more {
				_, err = store.Record(name, key, page.next, page.offset, page.items)
			} else {
				err = store.Delete(name, key)
			}
			if err != nil {
				log.WithError(err).Warn("failed to update checkpoint")
			}
		}
		return printJSON(cmd.OutOrStdout(), page.result)
	}
}

// resumeCount widens a requested count by the items that will be skipped
func resumeCount(n, skip int) int {
	if n < 0 || skip <= 0 {
		return n
	}
	return n + skip
}

func dropFirst[T any](items []T, n int) []T {
	if n <= 0 {
		return items
	}
	if n >= len(items) {
		return items[:0]
	}
	return items[n:]
}
