package model

// Tag is a hashtag search result
type Tag struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MediaCount    int64  `json:"media_count"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

var tagRecognizers = []recognizer[Tag]{
	{name: "identifier", keys: []string{"id"}, apply: func(t *Tag, _ string, v any, _ Node) { t.ID = AsString(v) }},
	{name: "name", keys: []string{"name"}, apply: func(t *Tag, _ string, v any, _ Node) { t.Name = AsString(v) }},
	{name: "media_count", keys: []string{"media_count"}, apply: func(t *Tag, _ string, v any, _ Node) { t.MediaCount = AsInt(v) }},
	{name: "profile_pic_url", keys: []string{"profile_pic_url"}, apply: func(t *Tag, _ string, v any, _ Node) { t.ProfilePicURL = AsString(v) }},
}

// NewTag hydrates a Tag from a raw node
func NewTag(raw Node) *Tag {
	t := &Tag{}
	if raw != nil {
		hydrate(t, raw, tagRecognizers, nil)
	}
	return t
}

// TaggedUser is an account tagged at a position inside a media
type TaggedUser struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	User *Account `json:"user"`
}

// NewTaggedUser hydrates a TaggedUser from an edge node
func NewTaggedUser(raw Node) *TaggedUser {
	return &TaggedUser{
		X:    AsFloat(raw.Lookup("x")),
		Y:    AsFloat(raw.Lookup("y")),
		User: NewAccount(raw.Node("user")),
	}
}
