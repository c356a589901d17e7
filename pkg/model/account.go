package model

// Account is a user profile as seen through any API generation
type Account struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name,omitempty"`
	Biography       string `json:"biography,omitempty"`
	ExternalURL     string `json:"external_url,omitempty"`
	ProfilePicURL   string `json:"profile_pic_url,omitempty"`
	ProfilePicURLHD string `json:"profile_pic_url_hd,omitempty"`

	MediaCount      int64 `json:"media_count"`
	FollowedByCount int64 `json:"followed_by_count"`
	FollowsCount    int64 `json:"follows_count"`

	IsPrivate         bool `json:"is_private"`
	IsVerified        bool `json:"is_verified"`
	IsBusinessAccount bool `json:"is_business_account"`

	BusinessCategory    string `json:"business_category,omitempty"`
	BusinessEmail       string `json:"business_email,omitempty"`
	BusinessPhoneNumber string `json:"business_phone_number,omitempty"`
	BusinessAddress     string `json:"business_address,omitempty"`

	BlockedByViewer    bool   `json:"blocked_by_viewer,omitempty"`
	FollowedByViewer   bool   `json:"followed_by_viewer,omitempty"`
	FollowsViewer      bool   `json:"follows_viewer,omitempty"`
	HasBlockedViewer   bool   `json:"has_blocked_viewer,omitempty"`
	RequestedByViewer  bool   `json:"requested_by_viewer,omitempty"`
	HasRequestedViewer bool   `json:"has_requested_viewer,omitempty"`
	ConnectedFBPage    string `json:"connected_fb_page,omitempty"`
	HighlightReelCount int64  `json:"highlight_reel_count,omitempty"`
	IsJoinedRecently   bool   `json:"is_joined_recently,omitempty"`

	Medias []*Media `json:"medias,omitempty"`
}

// ProfilePicture returns the best available profile picture URL
func (a *Account) ProfilePicture() string {
	if a.ProfilePicURLHD != "" {
		return a.ProfilePicURLHD
	}
	return a.ProfilePicURL
}

func stringField(set func(a *Account, s string)) func(*Account, string, any, Node) {
	return func(a *Account, _ string, v any, _ Node) { set(a, AsString(v)) }
}

func boolField(set func(a *Account, b bool)) func(*Account, string, any, Node) {
	return func(a *Account, _ string, v any, _ Node) { set(a, AsBool(v)) }
}

var accountRecognizers []recognizer[Account]

func init() {
	accountRecognizers = []recognizer[Account]{
		{
			name: "identifier",
			keys: []string{"id", "pk", "strong_id__"},
			apply: func(a *Account, _ string, v any, _ Node) {
				if id := AsString(v); id != "" {
					a.ID = id
				}
			},
		},
		{name: "username", keys: []string{"username"}, apply: stringField(func(a *Account, s string) { a.Username = s })},
		{name: "full_name", keys: []string{"full_name"}, apply: stringField(func(a *Account, s string) { a.FullName = s })},
		{name: "biography", keys: []string{"biography"}, apply: stringField(func(a *Account, s string) { a.Biography = s })},
		{name: "external_url", keys: []string{"external_url"}, apply: stringField(func(a *Account, s string) { a.ExternalURL = s })},
		{name: "profile_pic_url", keys: []string{"profile_pic_url"}, apply: stringField(func(a *Account, s string) { a.ProfilePicURL = s })},
		{name: "profile_pic_url_hd", keys: []string{"profile_pic_url_hd"}, apply: stringField(func(a *Account, s string) { a.ProfilePicURLHD = s })},
		{
			name: "hd_profile_pic",
			keys: []string{"hd_profile_pic_url_info"},
			apply: func(a *Account, _ string, v any, _ Node) {
				if u := AsNode(v).String("url"); u != "" {
					a.ProfilePicURLHD = u
				}
			},
		},
		{name: "is_private", keys: []string{"is_private"}, apply: boolField(func(a *Account, b bool) { a.IsPrivate = b })},
		{name: "is_verified", keys: []string{"is_verified"}, apply: boolField(func(a *Account, b bool) { a.IsVerified = b })},
		{name: "is_business_account", keys: []string{"is_business_account", "is_business"}, apply: boolField(func(a *Account, b bool) { a.IsBusinessAccount = b })},
		{name: "business_category", keys: []string{"business_category_name", "category"}, apply: stringField(func(a *Account, s string) { a.BusinessCategory = s })},
		{name: "business_email", keys: []string{"business_email", "public_email"}, apply: stringField(func(a *Account, s string) { a.BusinessEmail = s })},
		{name: "business_phone", keys: []string{"business_phone_number", "contact_phone_number"}, apply: stringField(func(a *Account, s string) { a.BusinessPhoneNumber = s })},
		{name: "business_address", keys: []string{"business_address_json"}, apply: stringField(func(a *Account, s string) { a.BusinessAddress = s })},
		{name: "blocked_by_viewer", keys: []string{"blocked_by_viewer"}, apply: boolField(func(a *Account, b bool) { a.BlockedByViewer = b })},
		{name: "followed_by_viewer", keys: []string{"followed_by_viewer"}, apply: boolField(func(a *Account, b bool) { a.FollowedByViewer = b })},
		{name: "follows_viewer", keys: []string{"follows_viewer"}, apply: boolField(func(a *Account, b bool) { a.FollowsViewer = b })},
		{name: "has_blocked_viewer", keys: []string{"has_blocked_viewer"}, apply: boolField(func(a *Account, b bool) { a.HasBlockedViewer = b })},
		{name: "requested_by_viewer", keys: []string{"requested_by_viewer"}, apply: boolField(func(a *Account, b bool) { a.RequestedByViewer = b })},
		{name: "has_requested_viewer", keys: []string{"has_requested_viewer"}, apply: boolField(func(a *Account, b bool) { a.HasRequestedViewer = b })},
		{name: "connected_fb_page", keys: []string{"connected_fb_page"}, apply: stringField(func(a *Account, s string) { a.ConnectedFBPage = s })},
		{name: "is_joined_recently", keys: []string{"is_joined_recently"}, apply: boolField(func(a *Account, b bool) { a.IsJoinedRecently = b })},
		{
			name: "highlight_reel_count",
			keys: []string{"highlight_reel_count"},
			apply: func(a *Account, _ string, v any, _ Node) { a.HighlightReelCount = AsInt(v) },
		},
		{
			// private API flat counters
			name: "flat_counts",
			keys: []string{"follower_count", "following_count", "media_count"},
			apply: func(a *Account, key string, v any, _ Node) {
				switch key {
				case "follower_count":
					a.FollowedByCount = AsInt(v)
				case "following_count":
					a.FollowsCount = AsInt(v)
				case "media_count":
					a.MediaCount = AsInt(v)
				}
			},
		},
		{
			name: "edge_counts",
			keys: []string{"edge_follow", "edge_followed_by"},
			apply: func(a *Account, key string, v any, _ Node) {
				count := AsNode(v).Int("count")
				if key == "edge_follow" {
					a.FollowsCount = count
				} else {
					a.FollowedByCount = count
				}
			},
		},
		{
			name: "timeline_media",
			keys: []string{"edge_owner_to_timeline_media"},
			apply: func(a *Account, _ string, v any, _ Node) {
				container := AsNode(v)
				if container == nil {
					return
				}
				a.MediaCount = container.Int("count")
				for _, edge := range container.Nodes("edges") {
					if node := edge.Node("node"); node != nil {
						a.Medias = append(a.Medias, NewMedia(node))
					}
				}
			},
		},
	}
}

// NewAccount hydrates an Account from a raw node. Unknown keys are ignored.
func NewAccount(raw Node) *Account {
	a := &Account{}
	if raw == nil {
		return a
	}
	hydrate(a, raw, accountRecognizers, nil)
	return a
}
