package instagram

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	igerrors "igclient/pkg/errors"
)

func tagPage(edges string, cursor string, hasNext bool) string {
	return fmt.Sprintf(`{"graphql":{"hashtag":{"name":"youneverknow","edge_hashtag_to_media":{"count":25,"page_info":{"end_cursor":%q,"has_next_page":%t},"edges":%s},"edge_hashtag_to_top_posts":{"edges":%s}}}}`,
		cursor, hasNext, edges, mediaEdges(100, 102, 9000))
}

// tagServer serves 25 medias of #youneverknow over two pages
func tagServer(t *testing.T) *testServer {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/explore/tags/youneverknow/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("__a"))
		switch r.URL.Query().Get("max_id") {
		case "":
			writeJSON(w, tagPage(mediaEdges(1, 12, 5000), "p2", true))
		case "p2":
			writeJSON(w, tagPage(mediaEdges(13, 25, 4988), "", false))
		default:
			http.Error(w, "unknown cursor", http.StatusBadRequest)
		}
	})
	return ts
}

func TestGetMediasByTag(t *testing.T) {
	client := newTestClient(t, tagServer(t))

	medias, err := client.GetMediasByTag(context.Background(), "youneverknow", 20, "", 0)
	require.NoError(t, err)
	require.Len(t, medias, 20)
	for i, m := range medias {
		assert.Equal(t, fmt.Sprint(i+1), m.ID, "server order must be kept")
	}
}

func TestGetMediasByTagLimits(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "zero", count: 0, want: 0},
		{name: "inside first page", count: 5, want: 5},
		{name: "page boundary", count: 12, want: 12},
		{name: "more than available", count: 100, want: 25},
		{name: "unlimited", count: -1, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tagServer(t))

			medias, err := client.GetMediasByTag(context.Background(), "youneverknow", tt.count, "", 0)
			require.NoError(t, err)
			assert.Len(t, medias, tt.want)
		})
	}
}

func TestGetMediasByTagStopsOnRepeatedPage(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/explore/tags/loop/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, tagPage(mediaEdges(1, 5, 5000), "again", true))
	})
	client := newTestClient(t, ts)

	medias, err := client.GetMediasByTag(context.Background(), "loop", 50, "", 0)
	require.NoError(t, err)
	require.Len(t, medias, 5)
	assert.Equal(t, "1", medias[0].ID)
	assert.Equal(t, "5", medias[4].ID)
}

func TestGetMediasByTagMinTimestamp(t *testing.T) {
	client := newTestClient(t, tagServer(t))

	// page one spans 5000..4989, page two 4988..4976
	medias, err := client.GetMediasByTag(context.Background(), "youneverknow", 100, "", 4985)
	require.NoError(t, err)
	require.Len(t, medias, 16)
	for _, m := range medias {
		assert.GreaterOrEqual(t, m.CreatedTime, int64(4985))
	}
}

func TestGetPaginateMediasByTag(t *testing.T) {
	client := newTestClient(t, tagServer(t))
	ctx := context.Background()

	first, err := client.GetPaginateMediasByTag(ctx, "youneverknow", "")
	require.NoError(t, err)
	assert.Len(t, first.Medias, 12)
	assert.Equal(t, "p2", first.MaxID)
	assert.True(t, first.HasNextPage)
	assert.Equal(t, int64(25), first.Count)

	second, err := client.GetPaginateMediasByTag(ctx, "youneverknow", first.MaxID)
	require.NoError(t, err)
	assert.Len(t, second.Medias, 13)
	assert.False(t, second.HasNextPage)
}

func TestGetCurrentTopMediasByTagName(t *testing.T) {
	client := newTestClient(t, tagServer(t))

	medias, err := client.GetCurrentTopMediasByTagName(context.Background(), "youneverknow")
	require.NoError(t, err)
	require.Len(t, medias, 3)
	assert.Equal(t, "100", medias[0].ID)
}

func TestSearchTagsByTagName(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/web/search/topsearch/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"status":"ok","users":[],"hashtags":[
			{"position":0,"hashtag":{"id":17841563269,"name":"youneverknow","media_count":25}}
		]}`)
	})
	client := newTestClient(t, ts)

	tags, err := client.SearchTagsByTagName(context.Background(), "youneverknow")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "17841563269", tags[0].ID)
	assert.Equal(t, int64(25), tags[0].MediaCount)
}

func TestGetMediasByTagRequiresTag(t *testing.T) {
	client := newTestClient(t, newTestServer(t))

	_, err := client.GetMediasByTag(context.Background(), "", 10, "", 0)
	assert.True(t, igerrors.IsValidation(err))
}
