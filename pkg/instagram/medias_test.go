package instagram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/session"
)

func TestGetMediasByUserID(t *testing.T) {
	var variables []string
	ts := newTestServer(t)
	ts.mux.HandleFunc("/graphql/query/", func(w http.ResponseWriter, r *http.Request) {
		vars := r.URL.Query().Get("variables")
		variables = append(variables, vars)

		if r.Header.Get("x-instagram-gis") != session.GISToken("seed42", vars) {
			http.Error(w, "bad signature", http.StatusForbidden)
			return
		}

		if strings.Contains(vars, `"after":"c1"`) {
			writeJSON(w, fmt.Sprintf(`{"data":{"user":{"edge_owner_to_timeline_media":{"count":4,"page_info":{"end_cursor":"c2","has_next_page":false},"edges":%s}}}}`, mediaEdges(3, 4, 900)))
			return
		}
		writeJSON(w, fmt.Sprintf(`{"data":{"user":{"edge_owner_to_timeline_media":{"count":4,"page_info":{"end_cursor":"c1","has_next_page":true},"edges":%s}}}}`, mediaEdges(1, 2, 1000)))
	})
	client := newTestClient(t, ts)

	medias, err := client.GetMediasByUserID(context.Background(), "3", 3, "")
	require.NoError(t, err)
	require.Len(t, medias, 3)
	for i, m := range medias {
		assert.Equal(t, fmt.Sprint(i+1), m.ID)
		assert.Equal(t, model.TypeImage, m.Type)
	}

	require.Len(t, variables, 2)
	assert.Equal(t, `{"after":"","first":"3","id":"3"}`, variables[0])
	assert.Equal(t, `{"after":"c1","first":"3","id":"3"}`, variables[1])
}

func TestGetMediasByUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/kevin/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, kevinPage)
	})
	ts.mux.HandleFunc("/graphql/query/", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("variables"), `"id":"3"`)
		writeJSON(w, fmt.Sprintf(`{"data":{"user":{"edge_owner_to_timeline_media":{"count":2,"page_info":{"has_next_page":false},"edges":%s}}}}`, mediaEdges(1, 2, 1000)))
	})
	client := newTestClient(t, ts)

	medias, err := client.GetMedias(context.Background(), "kevin", 10, "")
	require.NoError(t, err)
	assert.Len(t, medias, 2)
}

func TestGetPaginateMedias(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/kevin/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, kevinPage)
	})
	ts.mux.HandleFunc("/graphql/query/", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("variables"), `"after":"c1"`)
		writeJSON(w, fmt.Sprintf(`{"data":{"user":{"edge_owner_to_timeline_media":{"count":2,"page_info":{"end_cursor":"c2","has_next_page":true},"edges":%s}}}}`, mediaEdges(5, 6, 1000)))
	})
	client := newTestClient(t, ts)

	page, err := client.GetPaginateMedias(context.Background(), "kevin", "c1")
	require.NoError(t, err)
	assert.Len(t, page.Medias, 2)
	assert.Equal(t, "c2", page.MaxID)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, int64(2), page.Count)
}

func TestGetMediasFromFeed(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/kevin/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("__a"))
		writeJSON(w, fmt.Sprintf(`{"graphql":{"user":{"id":"3","edge_owner_to_timeline_media":{"count":5,"page_info":{"end_cursor":"x","has_next_page":true},"edges":%s}}}}`, mediaEdges(1, 5, 1000)))
	})
	client := newTestClient(t, ts)

	medias, err := client.GetMediasFromFeed(context.Background(), "kevin", 3)
	require.NoError(t, err)
	assert.Len(t, medias, 3)
}

const shortcodeMedia = `{"graphql":{"shortcode_media":{
	"__typename":"GraphVideo","id":"1270593720437182847","shortcode":"BGiDkHAgBF_",
	"taken_at_timestamp":1465000000,"is_video":true,"video_url":"https://cdn/v.mp4","video_view_count":42,
	"edge_media_to_caption":{"edges":[{"node":{"text":"hello"}}]},
	"edge_media_preview_like":{"count":7},
	"owner":{"id":"3","username":"kevin"},
	"edge_media_to_tagged_user":{"edges":[{"node":{"x":0.25,"y":0.5,"user":{"username":"mikey"}}}]}
}}}`

func mediaServer(t *testing.T) *testServer {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/p/{code}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("code") != "BGiDkHAgBF_" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("__a"))
		writeJSON(w, shortcodeMedia)
	})
	return ts
}

func TestGetMediaByCode(t *testing.T) {
	client := newTestClient(t, mediaServer(t))

	media, err := client.GetMediaByCode(context.Background(), "BGiDkHAgBF_")
	require.NoError(t, err)
	assert.Equal(t, "1270593720437182847", media.ID)
	assert.Equal(t, model.TypeVideo, media.Type)
	assert.Equal(t, "hello", media.Caption)
	assert.Equal(t, int64(7), media.LikesCount)
	assert.Equal(t, "https://cdn/v.mp4", media.VideoStandardResolutionURL)
	require.NotNil(t, media.Owner)
	assert.Equal(t, "kevin", media.Owner.Username)
}

func TestGetMediaByID(t *testing.T) {
	client := newTestClient(t, mediaServer(t))
	ctx := context.Background()

	media, err := client.GetMediaByID(ctx, "1270593720437182847_3")
	require.NoError(t, err)
	assert.Equal(t, "BGiDkHAgBF_", media.ShortCode)

	_, err = client.GetMediaByID(ctx, "not-a-number")
	assert.True(t, igerrors.IsValidation(err))

	_, err = client.GetMediaByID(ctx, "0")
	assert.True(t, igerrors.IsValidation(err))
}

func TestGetMediaByCodeNotFound(t *testing.T) {
	client := newTestClient(t, mediaServer(t))

	_, err := client.GetMediaByCode(context.Background(), "missing")
	assert.True(t, igerrors.IsNotFound(err))
}

func TestGetMediaByURLRejectsMalformed(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t, ts)

	for _, u := range []string{"", "instagram.com/p/abc", "ftp://host/p/abc", "https:// spaced/p"} {
		_, err := client.GetMediaByURL(context.Background(), u)
		assert.True(t, igerrors.IsValidation(err), "url %q", u)
	}
	assert.Equal(t, int32(0), ts.requests.Load())
}

func TestGetMediaTaggedUsersByCode(t *testing.T) {
	client := newTestClient(t, mediaServer(t))

	tagged, err := client.GetMediaTaggedUsersByCode(context.Background(), "BGiDkHAgBF_")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, 0.25, tagged[0].X)
	assert.Equal(t, 0.5, tagged[0].Y)
	assert.Equal(t, "mikey", tagged[0].User.Username)
}
