package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igclient/pkg/model"
)

func TestEdgePage(t *testing.T) {
	root, err := model.DecodeNode([]byte(`{"data": {"user": {"edge_followed_by": {
		"count": 2,
		"page_info": {"has_next_page": true, "end_cursor": "AQ"},
		"edges": [{"node": {"id": "1"}}, {"node": {"id": "2"}}, {"bogus": true}]
	}}}}`))
	require.NoError(t, err)

	page := EdgePage(root, "data", "user", "edge_followed_by")
	assert.Len(t, page.Nodes, 2)
	assert.Equal(t, "AQ", page.Cursor)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(2), EdgeCount(root, "data", "user", "edge_followed_by"))
}

func TestEdgePageDegradesOnMissingKeys(t *testing.T) {
	root, err := model.DecodeNode([]byte(`{"data": {"user": {"edge_follow": {
		"edges": [{"node": {"id": "1"}}],
		"page_info": {"has_next_page": true}
	}}}}`))
	require.NoError(t, err)

	page := EdgePage(root, "data", "user", "edge_follow")
	assert.Len(t, page.Nodes, 1)
	assert.False(t, page.HasMore)

	missing := EdgePage(root, "data", "user", "edge_followed_by")
	assert.Empty(t, missing.Nodes)
	assert.False(t, missing.HasMore)
}

func TestItemsPage(t *testing.T) {
	root, err := model.DecodeNode([]byte(`{"items": [{"pk": 1}, {"pk": 2}], "next_max_id": "QX", "more_available": true}`))
	require.NoError(t, err)

	page := ItemsPage(root, "items")
	assert.Len(t, page.Nodes, 2)
	assert.Equal(t, "QX", page.Cursor)
	assert.True(t, page.HasMore)
}
