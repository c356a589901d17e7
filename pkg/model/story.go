package model

// storySkip lists keys a story never hydrates. The owner is carried by the
// enclosing UserStories instead.
var storySkip = map[string]bool{
	"owner": true,
	"user":  true,
}

// Story is a Media hydrated without its owner
type Story = Media

// NewStory hydrates a story item
func NewStory(raw Node) *Story {
	return hydrateMedia(raw, storySkip)
}

// UserStories groups the live stories of one account
type UserStories struct {
	Owner   *Account `json:"owner"`
	Stories []*Story `json:"stories"`
}

// NewUserStories hydrates a reels_media entry: the owner from "user" or
// "owner" and the stories from "items".
func NewUserStories(raw Node) *UserStories {
	owner := raw.Node("user")
	if owner == nil {
		owner = raw.Node("owner")
	}

	us := &UserStories{Owner: NewAccount(owner)}
	for _, item := range raw.Nodes("items") {
		us.Stories = append(us.Stories, NewStory(item))
	}
	return us
}
