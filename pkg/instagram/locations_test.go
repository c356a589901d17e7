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

func locationServer(t *testing.T) *testServer {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/explore/locations/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "17326249" {
			http.NotFound(w, r)
			return
		}

		edges, cursor, next := mediaEdges(1, 3, 3000), "n1", true
		if r.URL.Query().Get("max_id") == "n1" {
			edges, cursor, next = mediaEdges(4, 5, 2997), "", false
		}
		writeJSON(w, fmt.Sprintf(`{"graphql":{"location":{
			"id":"17326249","name":"Moscow, Russia","slug":"moscow-russia","lat":55.7558,"lng":37.6176,
			"has_public_page":true,
			"edge_location_to_media":{"count":5,"page_info":{"end_cursor":%q,"has_next_page":%t},"edges":%s},
			"edge_location_to_top_posts":{"edges":%s}
		}}}`, cursor, next, edges, mediaEdges(50, 51, 9000)))
	})
	return ts
}

func TestGetLocationByID(t *testing.T) {
	client := newTestClient(t, locationServer(t))
	ctx := context.Background()

	location, err := client.GetLocationByID(ctx, "17326249")
	require.NoError(t, err)
	assert.Equal(t, "Moscow, Russia", location.Name)
	assert.Equal(t, "moscow-russia", location.Slug)
	assert.InDelta(t, 55.7558, location.Lat, 1e-9)
	assert.Equal(t, int64(5), location.MediaCount)

	_, err = client.GetLocationByID(ctx, "1")
	assert.True(t, igerrors.IsNotFound(err))
}

func TestGetMediasByLocationID(t *testing.T) {
	client := newTestClient(t, locationServer(t))

	medias, err := client.GetMediasByLocationID(context.Background(), "17326249", 10, "")
	require.NoError(t, err)
	require.Len(t, medias, 5)
	assert.Equal(t, "5", medias[4].ID)
}

func TestGetCurrentTopMediasByLocationID(t *testing.T) {
	client := newTestClient(t, locationServer(t))

	medias, err := client.GetCurrentTopMediasByLocationID(context.Background(), "17326249")
	require.NoError(t, err)
	assert.Len(t, medias, 2)
}
