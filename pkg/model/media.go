package model

import "fmt"

// Media types
const (
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeSidecar  = "sidecar"
	TypeCarousel = "carousel"
)

// MediaLinkFormat builds the public page link of a media from its shortcode
const MediaLinkFormat = "https://www.instagram.com/p/%s/"

// Media is a post (image, video, sidecar or carousel) or, through
// NewStory, a story item.
type Media struct {
	ID          string `json:"id"`
	ShortCode   string `json:"shortcode"`
	Link        string `json:"link"`
	Type        string `json:"type"`
	CreatedTime int64  `json:"created_time"`

	Caption         string `json:"caption,omitempty"`
	CaptionIsEdited bool   `json:"caption_is_edited,omitempty"`
	IsAd            bool   `json:"is_ad,omitempty"`

	LikesCount       int64      `json:"likes_count"`
	CommentsCount    int64      `json:"comments_count"`
	HasMoreComments  bool       `json:"has_more_comments,omitempty"`
	CommentsNextPage string     `json:"comments_next_page,omitempty"`
	Comments         []*Comment `json:"comments,omitempty"`

	ThumbnailSrc               string   `json:"thumbnail_src,omitempty"`
	ImageThumbnailURL          string   `json:"image_thumbnail_url,omitempty"`
	ImageLowResolutionURL      string   `json:"image_low_resolution_url,omitempty"`
	ImageStandardResolutionURL string   `json:"image_standard_resolution_url,omitempty"`
	ImageHighResolutionURL     string   `json:"image_high_resolution_url,omitempty"`
	SquareImages               []string `json:"square_images,omitempty"`

	VideoStandardResolutionURL string `json:"video_standard_resolution_url,omitempty"`
	VideoLowResolutionURL      string `json:"video_low_resolution_url,omitempty"`
	VideoLowBandwidthURL       string `json:"video_low_bandwidth_url,omitempty"`
	VideoViews                 int64  `json:"video_views,omitempty"`

	LocationID   string `json:"location_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	LocationSlug string `json:"location_slug,omitempty"`

	Owner    *Account `json:"owner,omitempty"`
	Sidecar  []*Media `json:"sidecar,omitempty"`
	Carousel []*Media `json:"carousel,omitempty"`
}

func mediaString(set func(m *Media, s string)) func(*Media, string, any, Node) {
	return func(m *Media, _ string, v any, _ Node) { set(m, AsString(v)) }
}

func srcList(v any) []Node {
	list, _ := v.([]any)
	out := make([]Node, 0, len(list))
	for _, item := range list {
		if n := AsNode(item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// mediaRecognizers are evaluated top to bottom. Video inference precedes the
// display_url fallback to image, and __typename comes last so that an
// explicit type always wins.
var mediaRecognizers []recognizer[Media]

func init() {
	mediaRecognizers = []recognizer[Media]{
		{
			name: "identifier",
			keys: []string{"id", "pk"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if id := AsString(v); id != "" {
					m.ID = id
				}
			},
		},
		{
			name: "shortcode",
			keys: []string{"code", "shortcode"},
			apply: func(m *Media, _ string, v any, _ Node) {
				m.ShortCode = AsString(v)
				m.Link = fmt.Sprintf(MediaLinkFormat, m.ShortCode)
			},
		},
		{name: "type", keys: []string{"type"}, apply: mediaString(func(m *Media, s string) { m.Type = s })},
		{name: "link", keys: []string{"link"}, apply: mediaString(func(m *Media, s string) { m.Link = s })},
		{
			name: "created_time",
			keys: []string{"created_time", "taken_at_timestamp", "date", "taken_at"},
			apply: func(m *Media, _ string, v any, _ Node) { m.CreatedTime = AsInt(v) },
		},
		{
			name: "caption",
			keys: []string{"caption"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if n := AsNode(v); n != nil {
					m.Caption = n.String("text")
					return
				}
				m.Caption = AsString(v)
			},
		},
		{
			name: "edge_caption",
			keys: []string{"edge_media_to_caption"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if text := AsNode(v).String("edges", 0, "node", "text"); text != "" {
					m.Caption = text
				}
			},
		},
		{name: "caption_is_edited", keys: []string{"caption_is_edited"}, apply: func(m *Media, _ string, v any, _ Node) { m.CaptionIsEdited = AsBool(v) }},
		{name: "is_ad", keys: []string{"is_ad"}, apply: func(m *Media, _ string, v any, _ Node) { m.IsAd = AsBool(v) }},
		{
			name: "like_counts",
			keys: []string{"edge_media_preview_like", "edge_liked_by", "likes"},
			apply: func(m *Media, _ string, v any, _ Node) { m.LikesCount = AsNode(v).Int("count") },
		},
		{
			name: "flat_counts",
			keys: []string{"like_count", "comment_count"},
			apply: func(m *Media, key string, v any, _ Node) {
				if key == "like_count" {
					m.LikesCount = AsInt(v)
				} else {
					m.CommentsCount = AsInt(v)
				}
			},
		},
		{name: "thumbnail_src", keys: []string{"thumbnail_src"}, apply: mediaString(func(m *Media, s string) { m.ThumbnailSrc = s })},
		{
			name: "display_resources",
			keys: []string{"display_resources"},
			apply: func(m *Media, _ string, v any, _ Node) {
				for _, res := range srcList(v) {
					switch res.Int("config_width") {
					case 640:
						m.ImageThumbnailURL = res.String("src")
					case 750:
						m.ImageLowResolutionURL = res.String("src")
					case 1080:
						m.ImageStandardResolutionURL = res.String("src")
					}
				}
			},
		},
		{
			name: "thumbnail_resources",
			keys: []string{"thumbnail_resources"},
			apply: func(m *Media, _ string, v any, _ Node) {
				m.SquareImages = m.SquareImages[:0]
				for _, res := range srcList(v) {
					m.SquareImages = append(m.SquareImages, res.String("src"))
				}
			},
		},
		{
			name: "images",
			keys: []string{"images"},
			apply: func(m *Media, _ string, v any, _ Node) {
				images := AsNode(v)
				m.ImageThumbnailURL = images.String("thumbnail", "url")
				m.ImageLowResolutionURL = images.String("low_resolution", "url")
				m.ImageStandardResolutionURL = images.String("standard_resolution", "url")
			},
		},
		{
			// private API, candidates are ordered largest first
			name: "image_versions2",
			keys: []string{"image_versions2"},
			apply: func(m *Media, _ string, v any, _ Node) {
				candidates := AsNode(v).Nodes("candidates")
				if len(candidates) == 0 {
					return
				}
				m.ImageHighResolutionURL = candidates[0].String("url")
				m.ImageThumbnailURL = candidates[len(candidates)-1].String("url")
				if m.Type == "" {
					m.Type = TypeImage
				}
			},
		},
		{
			name: "video_views",
			keys: []string{"video_views", "video_view_count"},
			apply: func(m *Media, key string, v any, _ Node) {
				m.VideoViews = AsInt(v)
				if key == "video_views" {
					m.Type = TypeVideo
				}
			},
		},
		{
			name: "is_video",
			keys: []string{"is_video"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if AsBool(v) {
					m.Type = TypeVideo
				}
			},
		},
		{name: "video_url", keys: []string{"video_url"}, apply: mediaString(func(m *Media, s string) { m.VideoStandardResolutionURL = s })},
		{
			name: "videos",
			keys: []string{"videos"},
			apply: func(m *Media, _ string, v any, _ Node) {
				videos := AsNode(v)
				m.VideoLowResolutionURL = videos.String("low_resolution", "url")
				m.VideoStandardResolutionURL = videos.String("standard_resolution", "url")
				m.VideoLowBandwidthURL = videos.String("low_bandwidth", "url")
			},
		},
		{
			name: "video_resources",
			keys: []string{"video_resources"},
			apply: func(m *Media, _ string, v any, _ Node) {
				for _, res := range srcList(v) {
					switch res.String("profile") {
					case "MAIN":
						m.VideoStandardResolutionURL = res.String("src")
					case "BASELINE":
						m.VideoLowResolutionURL = res.String("src")
						m.VideoLowBandwidthURL = res.String("src")
					}
				}
			},
		},
		{
			name: "video_versions",
			keys: []string{"video_versions"},
			apply: func(m *Media, _ string, v any, _ Node) {
				versions := srcList(v)
				if len(versions) == 0 {
					return
				}
				m.VideoStandardResolutionURL = versions[0].String("url")
				m.VideoLowResolutionURL = versions[len(versions)-1].String("url")
				m.Type = TypeVideo
			},
		},
		{
			name: "media_type",
			keys: []string{"media_type"},
			apply: func(m *Media, _ string, v any, _ Node) {
				switch AsInt(v) {
				case 1:
					m.Type = TypeImage
				case 2:
					m.Type = TypeVideo
				case 8:
					m.Type = TypeCarousel
				}
			},
		},
		{
			// synonyms, last one visited wins
			name: "display_url",
			keys: []string{"display_src", "display_url"},
			apply: func(m *Media, _ string, v any, _ Node) {
				m.ImageHighResolutionURL = AsString(v)
				if m.Type == "" {
					m.Type = TypeImage
				}
			},
		},
		{
			name: "edge_media_to_comment",
			keys: []string{"edge_media_to_comment", "edge_media_to_parent_comment"},
			apply: func(m *Media, _ string, v any, _ Node) {
				container := AsNode(v)
				if container.Has("count") {
					m.CommentsCount = container.Int("count")
				}
				for _, edge := range container.Nodes("edges") {
					if node := edge.Node("node"); node != nil {
						m.Comments = append(m.Comments, NewComment(node))
					}
				}
				if container.Has("page_info", "has_next_page") {
					m.HasMoreComments = container.Bool("page_info", "has_next_page")
				}
				if cursor := container.String("page_info", "end_cursor"); cursor != "" {
					m.CommentsNextPage = cursor
				}
			},
		},
		{
			name: "comments",
			keys: []string{"comments"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if n := AsNode(v); n != nil && m.CommentsCount == 0 {
					m.CommentsCount = n.Int("count")
				}
			},
		},
		{
			name: "location",
			keys: []string{"location"},
			apply: func(m *Media, _ string, v any, _ Node) {
				loc := AsNode(v)
				if loc == nil {
					return
				}
				m.LocationID = loc.String("id")
				if m.LocationID == "" {
					m.LocationID = loc.String("pk")
				}
				m.LocationName = loc.String("name")
				m.LocationSlug = loc.String("slug")
			},
		},
		{
			name: "owner",
			keys: []string{"owner", "user"},
			apply: func(m *Media, _ string, v any, _ Node) {
				if n := AsNode(v); n != nil {
					m.Owner = NewAccount(n)
				}
			},
		},
		{
			name: "sidecar_children",
			keys: []string{"edge_sidecar_to_children"},
			apply: func(m *Media, _ string, v any, _ Node) {
				for _, edge := range AsNode(v).Nodes("edges") {
					if node := edge.Node("node"); node != nil {
						m.Sidecar = append(m.Sidecar, NewMedia(node))
					}
				}
			},
		},
		{
			name: "carousel_media",
			keys: []string{"carousel_media"},
			apply: func(m *Media, _ string, v any, _ Node) {
				m.Type = TypeCarousel
				for _, child := range srcList(v) {
					m.Carousel = append(m.Carousel, NewMedia(child))
				}
			},
		},
		{
			name: "typename",
			keys: []string{"__typename"},
			apply: func(m *Media, _ string, v any, _ Node) {
				switch AsString(v) {
				case "GraphImage", "GraphStoryImage":
					m.Type = TypeImage
				case "GraphVideo", "GraphStoryVideo":
					m.Type = TypeVideo
				case "GraphSidecar":
					m.Type = TypeSidecar
				}
			},
		},
	}
}

// NewMedia hydrates a Media from a raw node of any API generation
func NewMedia(raw Node) *Media {
	return hydrateMedia(raw, nil)
}

func hydrateMedia(raw Node, skip map[string]bool) *Media {
	m := &Media{}
	if raw == nil {
		return m
	}
	hydrate(m, raw, mediaRecognizers, skip)
	m.deriveIdentity()
	return m
}

// deriveIdentity fills whichever of ID and ShortCode is missing from the
// other, then the link.
func (m *Media) deriveIdentity() {
	switch {
	case m.ShortCode == "" && m.ID != "":
		if code, err := CodeFromID(m.ID); err == nil {
			m.ShortCode = code
		}
	case m.ID == "" && m.ShortCode != "":
		if id, err := IDFromCode(m.ShortCode); err == nil {
			m.ID = id
		}
	}
	if m.Link == "" && m.ShortCode != "" {
		m.Link = fmt.Sprintf(MediaLinkFormat, m.ShortCode)
	}
}
