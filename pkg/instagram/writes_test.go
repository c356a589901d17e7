package instagram

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	igerrors "igclient/pkg/errors"
)

// writeServer answers every write with body, recording the request path
func writeServer(t *testing.T, status int, body string) (*testServer, *[]string) {
	var paths []string
	ts := newTestServer(t)
	ts.mux.HandleFunc("/web/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	return ts, &paths
}

func TestWriteOperations(t *testing.T) {
	ops := []struct {
		name string
		path string
		call func(*Client) error
	}{
		{"like", "/web/likes/42/like/", func(c *Client) error { return c.Like(context.Background(), "42") }},
		{"unlike", "/web/likes/42/unlike/", func(c *Client) error { return c.Unlike(context.Background(), "42") }},
		{"delete comment", "/web/comments/42/delete/7/", func(c *Client) error { return c.DeleteComment(context.Background(), "42", "7") }},
		{"follow", "/web/friendships/3/follow/", func(c *Client) error { return c.Follow(context.Background(), "3") }},
		{"unfollow", "/web/friendships/3/unfollow/", func(c *Client) error { return c.Unfollow(context.Background(), "3") }},
	}

	for _, op := range ops {
		t.Run(op.name+" ok", func(t *testing.T) {
			ts, paths := writeServer(t, http.StatusOK, `{"status":"ok"}`)
			require.NoError(t, op.call(newTestClient(t, ts)))
			assert.Equal(t, []string{op.path}, *paths)
		})

		t.Run(op.name+" failure on 200", func(t *testing.T) {
			ts, _ := writeServer(t, http.StatusOK, `{"status":"fail"}`)
			err := op.call(newTestClient(t, ts))
			require.Error(t, err)
			assert.True(t, igerrors.IsRequest(err))
			assert.Equal(t, http.StatusOK, igerrors.StatusCode(err))
		})

		t.Run(op.name+" rejected", func(t *testing.T) {
			ts, _ := writeServer(t, http.StatusBadRequest, `{"status":"fail","message":"nope"}`)
			err := op.call(newTestClient(t, ts))
			assert.True(t, igerrors.IsRequest(err))
			assert.Equal(t, http.StatusBadRequest, igerrors.StatusCode(err))
		})
	}
}

func TestAddComment(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/web/comments/42/add/", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "nice shot", r.PostForm.Get("comment_text"))
		assert.Equal(t, "7", r.PostForm.Get("replied_to_comment_id"))
		writeJSON(w, `{"id":"8","text":"nice shot","created_time":1500,"from":{"id":"3","username":"kevin"},"status":"ok"}`)
	})
	client := newTestClient(t, ts)

	comment, err := client.AddComment(context.Background(), "42", "nice shot", "7")
	require.NoError(t, err)
	assert.Equal(t, "8", comment.ID)
	assert.Equal(t, "nice shot", comment.Text)
	assert.Equal(t, "kevin", comment.Owner.Username)
}

func TestAddCommentStatusFail(t *testing.T) {
	ts, _ := writeServer(t, http.StatusOK, `{"status":"fail"}`)
	client := newTestClient(t, ts)

	_, err := client.AddComment(context.Background(), "42", "hello", "")
	assert.True(t, igerrors.IsRequest(err))
}

func TestWriteValidation(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t, ts)
	ctx := context.Background()

	assert.True(t, igerrors.IsValidation(client.Like(ctx, "")))
	assert.True(t, igerrors.IsValidation(client.DeleteComment(ctx, "42", "")))

	_, err := client.AddComment(ctx, "42", "", "")
	assert.True(t, igerrors.IsValidation(err))

	assert.Equal(t, int32(0), ts.requests.Load())
}
