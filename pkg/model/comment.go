package model

// Comment is a comment on a media
type Comment struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	CreatedAt int64    `json:"created_at"`
	Owner     *Account `json:"owner,omitempty"`
}

var commentRecognizers = []recognizer[Comment]{
	{
		name: "identifier",
		keys: []string{"id", "pk"},
		apply: func(c *Comment, _ string, v any, _ Node) {
			if id := AsString(v); id != "" {
				c.ID = id
			}
		},
	},
	{name: "text", keys: []string{"text"}, apply: func(c *Comment, _ string, v any, _ Node) { c.Text = AsString(v) }},
	{name: "created_at", keys: []string{"created_at"}, apply: func(c *Comment, _ string, v any, _ Node) { c.CreatedAt = AsInt(v) }},
	{
		name: "owner",
		keys: []string{"owner", "user", "from"},
		apply: func(c *Comment, _ string, v any, _ Node) {
			if n := AsNode(v); n != nil {
				c.Owner = NewAccount(n)
			}
		},
	},
}

// NewComment hydrates a Comment from a raw node
func NewComment(raw Node) *Comment {
	c := &Comment{}
	if raw != nil {
		hydrate(c, raw, commentRecognizers, nil)
	}
	return c
}
