package model

// Location is a place media can be tagged with
type Location struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug,omitempty"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
	HasPublicPage bool    `json:"has_public_page"`
	Modified      int64   `json:"modified,omitempty"`
	MediaCount    int64   `json:"media_count,omitempty"`
}

var locationRecognizers = []recognizer[Location]{
	{
		name: "identifier",
		keys: []string{"id", "pk"},
		apply: func(l *Location, _ string, v any, _ Node) {
			if id := AsString(v); id != "" {
				l.ID = id
			}
		},
	},
	{name: "name", keys: []string{"name"}, apply: func(l *Location, _ string, v any, _ Node) { l.Name = AsString(v) }},
	{name: "slug", keys: []string{"slug"}, apply: func(l *Location, _ string, v any, _ Node) { l.Slug = AsString(v) }},
	{
		name: "coordinates",
		keys: []string{"lat", "lng"},
		apply: func(l *Location, key string, v any, _ Node) {
			if key == "lat" {
				l.Lat = AsFloat(v)
			} else {
				l.Lng = AsFloat(v)
			}
		},
	},
	{name: "has_public_page", keys: []string{"has_public_page"}, apply: func(l *Location, _ string, v any, _ Node) { l.HasPublicPage = AsBool(v) }},
	{name: "modified", keys: []string{"modified"}, apply: func(l *Location, _ string, v any, _ Node) { l.Modified = AsInt(v) }},
	{
		name: "media_count",
		keys: []string{"edge_location_to_media"},
		apply: func(l *Location, _ string, v any, _ Node) { l.MediaCount = AsNode(v).Int("count") },
	},
}

// NewLocation hydrates a Location from a raw node
func NewLocation(raw Node) *Location {
	l := &Location{}
	if raw != nil {
		hydrate(l, raw, locationRecognizers, nil)
	}
	return l
}
