package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountIdentifierShapes(t *testing.T) {
	for _, body := range []string{`{"id": "3"}`, `{"pk": 3}`, `{"strong_id__": "3"}`} {
		assert.Equal(t, "3", NewAccount(mustNode(t, body)).ID, body)
	}
}

func TestAccountProfilePage(t *testing.T) {
	a := NewAccount(mustNode(t, `{
		"id": "3",
		"username": "kevin",
		"full_name": "Kevin",
		"biography": "co-founder",
		"is_private": false,
		"is_verified": true,
		"profile_pic_url": "pic",
		"profile_pic_url_hd": "pic-hd",
		"edge_follow": {"count": 100},
		"edge_followed_by": {"count": 2000000},
		"edge_owner_to_timeline_media": {
			"count": 1500,
			"edges": [{"node": {"id": "1", "shortcode": "B"}}, {"node": {"id": "2"}}]
		}
	}`))

	assert.Equal(t, "kevin", a.Username)
	assert.Equal(t, "Kevin", a.FullName)
	assert.True(t, a.IsVerified)
	assert.False(t, a.IsPrivate)
	assert.Equal(t, int64(100), a.FollowsCount)
	assert.Equal(t, int64(2000000), a.FollowedByCount)
	assert.Equal(t, int64(1500), a.MediaCount)
	require.Len(t, a.Medias, 2)
	assert.Equal(t, "C", a.Medias[1].ShortCode)
	assert.Equal(t, "pic-hd", a.ProfilePicture())
}

func TestAccountPrivateAPI(t *testing.T) {
	a := NewAccount(mustNode(t, `{
		"pk": 3,
		"username": "kevin",
		"follower_count": 10,
		"following_count": 20,
		"media_count": 30,
		"hd_profile_pic_url_info": {"url": "hd"}
	}`))
	assert.Equal(t, int64(10), a.FollowedByCount)
	assert.Equal(t, int64(20), a.FollowsCount)
	assert.Equal(t, int64(30), a.MediaCount)
	assert.Equal(t, "hd", a.ProfilePicURLHD)
}

func TestOtherEntities(t *testing.T) {
	loc := NewLocation(mustNode(t, `{"id": "77", "name": "Paris", "slug": "paris", "lat": 48.85, "lng": "2.35", "has_public_page": true, "edge_location_to_media": {"count": 9}}`))
	assert.Equal(t, "77", loc.ID)
	assert.InDelta(t, 48.85, loc.Lat, 1e-9)
	assert.InDelta(t, 2.35, loc.Lng, 1e-9)
	assert.True(t, loc.HasPublicPage)
	assert.Equal(t, int64(9), loc.MediaCount)

	tag := NewTag(mustNode(t, `{"id": 17841563269118490, "name": "go", "media_count": 12}`))
	assert.Equal(t, "17841563269118490", tag.ID)
	assert.Equal(t, int64(12), tag.MediaCount)

	tu := NewTaggedUser(mustNode(t, `{"x": 0.5, "y": 0.25, "user": {"username": "kevin"}}`))
	assert.Equal(t, 0.5, tu.X)
	assert.Equal(t, "kevin", tu.User.Username)
}

func TestNodeLookup(t *testing.T) {
	n := mustNode(t, `{"a": {"b": [{"c": 1}, {"c": "x"}]}, "big": 1270593720437182847}`)
	assert.Equal(t, int64(1), n.Int("a", "b", 0, "c"))
	assert.Equal(t, "x", n.String("a", "b", 1, "c"))
	assert.Nil(t, n.Lookup("a", "b", 5))
	assert.Nil(t, n.Lookup("a", "missing", "c"))
	assert.Nil(t, n.Lookup("a", 0))
	assert.Equal(t, "1270593720437182847", n.String("big"))
	assert.Len(t, n.Nodes("a", "b"), 2)
}

func TestNestedAccountMediaHydration(t *testing.T) {
	a := NewAccount(mustNode(t, `{
		"id": "3",
		"edge_owner_to_timeline_media": {
			"edges": [{"node": {
				"id": "1",
				"owner": {"id": "3", "username": "kevin"},
				"edge_sidecar_to_children": {"edges": [{"node": {"id": "11", "owner": {"id": "3"}}}]}
			}}]
		}
	}`))

	require.Len(t, a.Medias, 1)
	m := a.Medias[0]
	require.NotNil(t, m.Owner)
	assert.Equal(t, "kevin", m.Owner.Username)
	require.Len(t, m.Sidecar, 1)
	assert.Equal(t, "11", m.Sidecar[0].ID)
	assert.Equal(t, "3", m.Sidecar[0].Owner.ID)
}
