// Package checkpoint saves the cursor of an interrupted listing so a later
// run can resume it.
//
// A checkpoint is keyed by the listing (followers, comments, ...) and the
// subject it lists (an account id, a shortcode). Files live in the session
// directory under checkpoints/ and are written atomically.
package checkpoint
