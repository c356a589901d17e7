package endpoints

import (
	"net/url"
	"strings"
)

// Endpoint names understood by Resolver.URL
const (
	Base                 = "base"
	Login                = "login"
	MachineID            = "mid"
	AccountPage          = "account_page"
	AccountJSON          = "account_json"
	AccountMedias        = "account_medias"
	AccountPrivateInfo   = "account_private_info"
	MediaPage            = "media_page"
	MediaJSON            = "media_json"
	MediasByTag          = "medias_by_tag"
	MediasByLocation     = "medias_by_location"
	GeneralSearch        = "general_search"
	CommentsByCode       = "comments_by_code"
	LikesByCode          = "likes_by_code"
	Followers            = "followers"
	Following            = "following"
	Follow               = "follow"
	Unfollow             = "unfollow"
	Like                 = "like"
	Unlike               = "unlike"
	AddComment           = "add_comment"
	DeleteComment        = "delete_comment"
	UserStories          = "user_stories"
	Stories              = "stories"
)

const (
	// DefaultMediaLimit is the default number of media items to fetch per request
	DefaultMediaLimit = 12

	// MaxMediaLimit is the maximum number of media items that can be fetched per request
	MaxMediaLimit = 50

	// MaxCommentsPerRequest caps the page size of comment listings
	MaxCommentsPerRequest = 300

	// MaxLikesPerRequest caps the page size of like listings
	MaxLikesPerRequest = 50
)

// Templates maps endpoint names to URL templates. {web} and {api} expand to
// the resolver roots; {name} expands to the percent-encoded parameter. A
// "&key={name?}" segment is dropped entirely when the parameter is empty.
var Templates = map[string]string{
	Base:               "{web}/",
	Login:              "{web}/accounts/login/ajax/",
	MachineID:          "{web}/web/__mid/",
	AccountPage:        "{web}/{username}/",
	AccountJSON:        "{web}/{username}/?__a=1",
	AccountMedias:      "{web}/graphql/query/?query_hash=42323d64886122307be10013ad2dcc44&variables={variables}",
	AccountPrivateInfo: "{api}/api/v1/users/{user_id}/info/",
	MediaPage:          "{web}/p/{code}/",
	MediaJSON:          "{web}/p/{code}/?__a=1",
	MediasByTag:        "{web}/explore/tags/{tag}/?__a=1&max_id={max_id}",
	MediasByLocation:   "{web}/explore/locations/{location_id}/?__a=1&max_id={max_id}",
	GeneralSearch:      "{web}/web/search/topsearch/?query={query}",
	CommentsByCode:     "{web}/graphql/query/?query_hash=33ba35852cb50da46f5b5e889df7d159&variables={variables}",
	LikesByCode:        "{web}/graphql/query/?query_id=17864450716183058&variables={variables}",
	Followers:          "{web}/graphql/query/?query_id=17851374694183129&id={account_id}&first={count}&after={after?}",
	Following:          "{web}/graphql/query/?query_id=17874545323001329&id={account_id}&first={count}&after={after?}",
	Follow:             "{web}/web/friendships/{account_id}/follow/",
	Unfollow:           "{web}/web/friendships/{account_id}/unfollow/",
	Like:               "{web}/web/likes/{media_id}/like/",
	Unlike:             "{web}/web/likes/{media_id}/unlike/",
	AddComment:         "{web}/web/comments/{media_id}/add/",
	DeleteComment:      "{web}/web/comments/{media_id}/delete/{comment_id}/",
	UserStories:        "{web}/graphql/query/?query_id=17890626976041463&variables=%5B%5D",
	Stories:            "{web}/graphql/query/?query_id=17873473675158481&variables={variables}",
}

// Resolver turns endpoint names into fully-qualified URLs
type Resolver struct {
	WebBase string
	APIBase string
}

// NewResolver creates a resolver over the given roots. Trailing slashes are trimmed.
func NewResolver(webBase, apiBase string) *Resolver {
	return &Resolver{
		WebBase: strings.TrimRight(webBase, "/"),
		APIBase: strings.TrimRight(apiBase, "/"),
	}
}

// URL expands the template registered under name. Unknown names yield "".
func (r *Resolver) URL(name string, params map[string]string) string {
	tmpl, ok := Templates[name]
	if !ok {
		return ""
	}

	tmpl = strings.ReplaceAll(tmpl, "{web}", r.WebBase)
	tmpl = strings.ReplaceAll(tmpl, "{api}", r.APIBase)

	return expand(tmpl, params)
}

// MediaLink returns the public page of a media
func (r *Resolver) MediaLink(code string) string {
	return r.URL(MediaPage, map[string]string{"code": code})
}

func expand(tmpl string, params map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			b.WriteString(tmpl)
			break
		}
		end += open

		key := tmpl[open+1 : end]
		optional := strings.HasSuffix(key, "?")
		key = strings.TrimSuffix(key, "?")
		value := params[key]

		prefix := tmpl[:open]
		if optional && value == "" {
			if amp := strings.LastIndexByte(prefix, '&'); amp >= 0 {
				prefix = prefix[:amp]
			}
			b.WriteString(prefix)
		} else {
			b.WriteString(prefix)
			b.WriteString(url.QueryEscape(value))
		}
		tmpl = tmpl[end+1:]
	}

	return b.String()
}

// ClampMediaLimit keeps a per-request media count within the accepted range
func ClampMediaLimit(limit int) int {
	if limit <= 0 {
		return DefaultMediaLimit
	}
	if limit > MaxMediaLimit {
		return MaxMediaLimit
	}
	return limit
}
