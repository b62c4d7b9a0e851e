package fedi

import "time"

// Account represents a user of a Mastodon-compatible server.
type Account struct {
	ID             string          `json:"id"                        yaml:"id"`
	Username       string          `json:"username"                  yaml:"username"`
	Acct           string          `json:"acct"                      yaml:"acct"`
	DisplayName    string          `json:"display_name"              yaml:"display_name"`
	Locked         bool            `json:"locked"                    yaml:"locked"`
	Bot            bool            `json:"bot"                       yaml:"bot"`
	CreatedAt      time.Time       `json:"created_at"                yaml:"created_at"`
	Note           string          `json:"note"                      yaml:"note"`
	URL            string          `json:"url"                       yaml:"url"`
	Avatar         string          `json:"avatar"                    yaml:"avatar"`
	AvatarStatic   string          `json:"avatar_static"             yaml:"avatar_static"`
	Header         string          `json:"header"                    yaml:"header"`
	HeaderStatic   string          `json:"header_static"             yaml:"header_static"`
	FollowersCount int64           `json:"followers_count"           yaml:"followers_count"`
	FollowingCount int64           `json:"following_count"           yaml:"following_count"`
	StatusesCount  int64           `json:"statuses_count"            yaml:"statuses_count"`
	LastStatusAt   string          `json:"last_status_at,omitempty"  yaml:"last_status_at,omitempty"`
	Emojis         []Emoji         `json:"emojis,omitempty"          yaml:"emojis,omitempty"`
	Fields         []AccountField  `json:"fields,omitempty"          yaml:"fields,omitempty"`
	Moved          *Account        `json:"moved,omitempty"           yaml:"moved,omitempty"`
	Source         *AccountSource  `json:"source,omitempty"          yaml:"source,omitempty"`
}

// AccountField is a name/value pair displayed on an account's profile.
type AccountField struct {
	Name       string     `json:"name"                  yaml:"name"`
	Value      string     `json:"value"                 yaml:"value"`
	VerifiedAt *time.Time `json:"verified_at,omitempty" yaml:"verified_at,omitempty"`
}

// AccountSource holds the unrendered profile fields, only returned for the
// credentialed account.
type AccountSource struct {
	Privacy   string         `json:"privacy,omitempty"   yaml:"privacy,omitempty"`
	Sensitive *bool          `json:"sensitive,omitempty" yaml:"sensitive,omitempty"`
	Language  string         `json:"language,omitempty"  yaml:"language,omitempty"`
	Note      string         `json:"note,omitempty"      yaml:"note,omitempty"`
	Fields    []AccountField `json:"fields,omitempty"    yaml:"fields,omitempty"`
}

// Status represents a post.
type Status struct {
	ID                 string       `json:"id"                            yaml:"id"`
	URI                string       `json:"uri"                           yaml:"uri"`
	URL                string       `json:"url,omitempty"                 yaml:"url,omitempty"`
	Account            Account      `json:"account"                       yaml:"account"`
	InReplyToID        string       `json:"in_reply_to_id,omitempty"      yaml:"in_reply_to_id,omitempty"`
	InReplyToAccountID string       `json:"in_reply_to_account_id,omitempty" yaml:"in_reply_to_account_id,omitempty"`
	Reblog             *Status      `json:"reblog,omitempty"              yaml:"reblog,omitempty"`
	Content            string       `json:"content"                       yaml:"content"`
	CreatedAt          time.Time    `json:"created_at"                    yaml:"created_at"`
	EditedAt           *time.Time   `json:"edited_at,omitempty"           yaml:"edited_at,omitempty"`
	Emojis             []Emoji      `json:"emojis,omitempty"              yaml:"emojis,omitempty"`
	RepliesCount       int64        `json:"replies_count"                 yaml:"replies_count"`
	ReblogsCount       int64        `json:"reblogs_count"                 yaml:"reblogs_count"`
	FavouritesCount    int64        `json:"favourites_count"              yaml:"favourites_count"`
	Reblogged          bool         `json:"reblogged,omitempty"           yaml:"reblogged,omitempty"`
	Favourited         bool         `json:"favourited,omitempty"          yaml:"favourited,omitempty"`
	Bookmarked         bool         `json:"bookmarked,omitempty"          yaml:"bookmarked,omitempty"`
	Muted              bool         `json:"muted,omitempty"               yaml:"muted,omitempty"`
	Pinned             bool         `json:"pinned,omitempty"              yaml:"pinned,omitempty"`
	Sensitive          bool         `json:"sensitive"                     yaml:"sensitive"`
	SpoilerText        string       `json:"spoiler_text"                  yaml:"spoiler_text"`
	Visibility         string       `json:"visibility"                    yaml:"visibility"`
	Language           string       `json:"language,omitempty"            yaml:"language,omitempty"`
	MediaAttachments   []Attachment `json:"media_attachments"             yaml:"media_attachments"`
	Mentions           []Mention    `json:"mentions"                      yaml:"mentions"`
	Tags               []Tag        `json:"tags"                          yaml:"tags"`
	Card               *Card        `json:"card,omitempty"                yaml:"card,omitempty"`
	Poll               *Poll        `json:"poll,omitempty"                yaml:"poll,omitempty"`
	Application        *Application `json:"application,omitempty"         yaml:"application,omitempty"`
}

// Attachment represents an uploaded media attachment.
type Attachment struct {
	ID          string          `json:"id"                    yaml:"id"`
	Type        string          `json:"type"                  yaml:"type"`
	URL         string          `json:"url"                   yaml:"url"`
	RemoteURL   string          `json:"remote_url,omitempty"  yaml:"remote_url,omitempty"`
	PreviewURL  string          `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Blurhash    string          `json:"blurhash,omitempty"    yaml:"blurhash,omitempty"`
	Meta        *AttachmentMeta `json:"meta,omitempty"        yaml:"meta,omitempty"`
}

// AttachmentMeta carries size metadata for an attachment.
type AttachmentMeta struct {
	Original *AttachmentSize `json:"original,omitempty" yaml:"original,omitempty"`
	Small    *AttachmentSize `json:"small,omitempty"    yaml:"small,omitempty"`
}

// AttachmentSize describes one rendition of an attachment.
type AttachmentSize struct {
	Width  int     `json:"width,omitempty"  yaml:"width,omitempty"`
	Height int     `json:"height,omitempty" yaml:"height,omitempty"`
	Size   string  `json:"size,omitempty"   yaml:"size,omitempty"`
	Aspect float64 `json:"aspect,omitempty" yaml:"aspect,omitempty"`
}

// Mention represents a mention of another account within a status.
type Mention struct {
	ID       string `json:"id"       yaml:"id"`
	URL      string `json:"url"      yaml:"url"`
	Username string `json:"username" yaml:"username"`
	Acct     string `json:"acct"     yaml:"acct"`
}

// Tag represents a hashtag used within a status.
type Tag struct {
	Name    string       `json:"name"              yaml:"name"`
	URL     string       `json:"url"               yaml:"url"`
	History []TagHistory `json:"history,omitempty" yaml:"history,omitempty"`
}

// TagHistory is daily usage information for a hashtag.
type TagHistory struct {
	Day      string `json:"day"      yaml:"day"`
	Uses     string `json:"uses"     yaml:"uses"`
	Accounts string `json:"accounts" yaml:"accounts"`
}

// Emoji represents a custom emoji.
type Emoji struct {
	Shortcode       string `json:"shortcode"         yaml:"shortcode"`
	URL             string `json:"url"               yaml:"url"`
	StaticURL       string `json:"static_url"        yaml:"static_url"`
	VisibleInPicker bool   `json:"visible_in_picker" yaml:"visible_in_picker"`
}

// Card represents a rich preview card generated for a status link.
type Card struct {
	URL         string `json:"url"                   yaml:"url"`
	Title       string `json:"title"                 yaml:"title"`
	Description string `json:"description"           yaml:"description"`
	Type        string `json:"type"                  yaml:"type"`
	AuthorName  string `json:"author_name,omitempty" yaml:"author_name,omitempty"`
	AuthorURL   string `json:"author_url,omitempty"  yaml:"author_url,omitempty"`
	Image       string `json:"image,omitempty"       yaml:"image,omitempty"`
	Width       int    `json:"width,omitempty"       yaml:"width,omitempty"`
	Height      int    `json:"height,omitempty"      yaml:"height,omitempty"`
}

// Poll represents a poll attached to a status.
type Poll struct {
	ID          string       `json:"id"                   yaml:"id"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired     bool         `json:"expired"              yaml:"expired"`
	Multiple    bool         `json:"multiple"             yaml:"multiple"`
	VotesCount  int64        `json:"votes_count"          yaml:"votes_count"`
	VotersCount int64        `json:"voters_count"         yaml:"voters_count"`
	Voted       bool         `json:"voted,omitempty"      yaml:"voted,omitempty"`
	OwnVotes    []int        `json:"own_votes,omitempty"  yaml:"own_votes,omitempty"`
	Options     []PollOption `json:"options"              yaml:"options"`
}

// PollOption is one choice within a poll.
type PollOption struct {
	Title      string `json:"title"       yaml:"title"`
	VotesCount int64  `json:"votes_count" yaml:"votes_count"`
}

// Notification represents an event directed at the credentialed account.
type Notification struct {
	ID        string    `json:"id"               yaml:"id"`
	Type      string    `json:"type"             yaml:"type"`
	CreatedAt time.Time `json:"created_at"       yaml:"created_at"`
	Account   Account   `json:"account"          yaml:"account"`
	Status    *Status   `json:"status,omitempty" yaml:"status,omitempty"`
}

// Relationship represents the relationship between the credentialed account
// and another account.
type Relationship struct {
	ID                  string `json:"id"                    yaml:"id"`
	Following           bool   `json:"following"             yaml:"following"`
	FollowedBy          bool   `json:"followed_by"           yaml:"followed_by"`
	ShowingReblogs      bool   `json:"showing_reblogs"       yaml:"showing_reblogs"`
	Notifying           bool   `json:"notifying"             yaml:"notifying"`
	Blocking            bool   `json:"blocking"              yaml:"blocking"`
	BlockedBy           bool   `json:"blocked_by"            yaml:"blocked_by"`
	Muting              bool   `json:"muting"                yaml:"muting"`
	MutingNotifications bool   `json:"muting_notifications"  yaml:"muting_notifications"`
	Requested           bool   `json:"requested"             yaml:"requested"`
	DomainBlocking      bool   `json:"domain_blocking"       yaml:"domain_blocking"`
	Endorsed            bool   `json:"endorsed"              yaml:"endorsed"`
	Note                string `json:"note,omitempty"        yaml:"note,omitempty"`
}

// Instance represents server metadata from /api/v1/instance.
type Instance struct {
	URI              string         `json:"uri"                         yaml:"uri"`
	Title            string         `json:"title"                       yaml:"title"`
	Description      string         `json:"description"                 yaml:"description"`
	ShortDescription string         `json:"short_description,omitempty" yaml:"short_description,omitempty"`
	Email            string         `json:"email"                       yaml:"email"`
	Version          string         `json:"version"                     yaml:"version"`
	Languages        []string       `json:"languages,omitempty"         yaml:"languages,omitempty"`
	Registrations    bool           `json:"registrations"               yaml:"registrations"`
	ApprovalRequired bool           `json:"approval_required"           yaml:"approval_required"`
	Thumbnail        string         `json:"thumbnail,omitempty"         yaml:"thumbnail,omitempty"`
	URLs             *InstanceURLs  `json:"urls,omitempty"              yaml:"urls,omitempty"`
	Stats            *InstanceStats `json:"stats,omitempty"             yaml:"stats,omitempty"`
	ContactAccount   *Account       `json:"contact_account,omitempty"   yaml:"contact_account,omitempty"`
}

// InstanceURLs carries well-known endpoints advertised by the server.
type InstanceURLs struct {
	StreamingAPI string `json:"streaming_api" yaml:"streaming_api"`
}

// InstanceStats summarizes server activity.
type InstanceStats struct {
	UserCount   int64 `json:"user_count"   yaml:"user_count"`
	StatusCount int64 `json:"status_count" yaml:"status_count"`
	DomainCount int64 `json:"domain_count" yaml:"domain_count"`
}

// InstanceActivity is one week of server activity from /api/v1/instance/activity.
type InstanceActivity struct {
	Week          string `json:"week"          yaml:"week"`
	Statuses      string `json:"statuses"      yaml:"statuses"`
	Logins        string `json:"logins"        yaml:"logins"`
	Registrations string `json:"registrations" yaml:"registrations"`
}

// List represents a named list of accounts.
type List struct {
	ID            string `json:"id"                       yaml:"id"`
	Title         string `json:"title"                    yaml:"title"`
	RepliesPolicy string `json:"replies_policy,omitempty" yaml:"replies_policy,omitempty"`
}

// Context groups the ancestors and descendants of a status.
type Context struct {
	Ancestors   []Status `json:"ancestors"   yaml:"ancestors"`
	Descendants []Status `json:"descendants" yaml:"descendants"`
}

// Results represents a /api/v2/search response.
type Results struct {
	Accounts []Account `json:"accounts" yaml:"accounts"`
	Statuses []Status  `json:"statuses" yaml:"statuses"`
	Hashtags []Tag     `json:"hashtags" yaml:"hashtags"`
}

// Conversation represents a direct-message thread.
type Conversation struct {
	ID         string    `json:"id"                    yaml:"id"`
	Accounts   []Account `json:"accounts"              yaml:"accounts"`
	Unread     bool      `json:"unread"                yaml:"unread"`
	LastStatus *Status   `json:"last_status,omitempty" yaml:"last_status,omitempty"`
}

// Application represents an OAuth application registered with a server.
type Application struct {
	ID           string `json:"id,omitempty"            yaml:"id,omitempty"`
	Name         string `json:"name"                    yaml:"name"`
	Website      string `json:"website,omitempty"       yaml:"website,omitempty"`
	RedirectURI  string `json:"redirect_uri,omitempty"  yaml:"redirect_uri,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	VapidKey     string `json:"vapid_key,omitempty"     yaml:"vapid_key,omitempty"`
}

// Report represents a moderation report filed against an account.
type Report struct {
	ID          string `json:"id"           yaml:"id"`
	ActionTaken bool   `json:"action_taken" yaml:"action_taken"`
}
