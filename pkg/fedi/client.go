package fedi

import (
	"context"
	"io"
	"time"
)

// ContentClients provides access to status and media resource clients.
type ContentClients interface {
	Statuses() StatusesClient
	Timelines() TimelinesClient
	Media() MediaClient
	Polls() PollsClient
}

// SocialClients provides access to account-graph resource clients.
type SocialClients interface {
	Accounts() AccountsClient
	Notifications() NotificationsClient
	Lists() ListsClient
	Reports() ReportsClient
}

// DiscoveryClients provides access to server metadata and search clients.
type DiscoveryClients interface {
	Search() SearchClient
	Instance() InstanceClient
	Apps() AppsClient
}

// Client provides access to all resource-specific clients.
type Client interface {
	ContentClients
	SocialClients
	DiscoveryClients

	Streaming() StreamingClient
}

// AccountsClient covers the /api/v1/accounts surface.
type AccountsClient interface {
	Get(ctx context.Context, id string) (*Account, error)
	VerifyCredentials(ctx context.Context) (*Account, error)
	Update(ctx context.Context, request *AccountUpdateRequest) (*Account, error)
	Statuses(id string, params *QueryParams) *Pager[Status]
	Followers(id string, params *QueryParams) *Pager[Account]
	Following(id string, params *QueryParams) *Pager[Account]
	Follow(ctx context.Context, id string, request *FollowRequest) (*Relationship, error)
	Unfollow(ctx context.Context, id string) (*Relationship, error)
	Block(ctx context.Context, id string) (*Relationship, error)
	Unblock(ctx context.Context, id string) (*Relationship, error)
	Mute(ctx context.Context, id string) (*Relationship, error)
	Unmute(ctx context.Context, id string) (*Relationship, error)
	Relationships(ctx context.Context, ids []string) ([]Relationship, error)
	Search(ctx context.Context, query string, limit int) ([]Account, error)
	FollowRequests(params *QueryParams) *Pager[Account]
	AcceptFollowRequest(ctx context.Context, id string) error
	RejectFollowRequest(ctx context.Context, id string) error
	Blocks(params *QueryParams) *Pager[Account]
	Mutes(params *QueryParams) *Pager[Account]
}

// StatusesClient covers the /api/v1/statuses surface.
type StatusesClient interface {
	Get(ctx context.Context, id string) (*Status, error)
	Create(ctx context.Context, request *StatusCreateRequest) (*Status, error)
	Delete(ctx context.Context, id string) error
	Context(ctx context.Context, id string) (*Context, error)
	Card(ctx context.Context, id string) (*Card, error)
	RebloggedBy(id string, params *QueryParams) *Pager[Account]
	FavouritedBy(id string, params *QueryParams) *Pager[Account]
	Favourite(ctx context.Context, id string) (*Status, error)
	Unfavourite(ctx context.Context, id string) (*Status, error)
	Reblog(ctx context.Context, id string) (*Status, error)
	Unreblog(ctx context.Context, id string) (*Status, error)
	Bookmark(ctx context.Context, id string) (*Status, error)
	Unbookmark(ctx context.Context, id string) (*Status, error)
	Pin(ctx context.Context, id string) (*Status, error)
	Unpin(ctx context.Context, id string) (*Status, error)
	Favourites(params *QueryParams) *Pager[Status]
	Bookmarks(params *QueryParams) *Pager[Status]
}

// TimelinesClient covers the /api/v1/timelines surface. Every timeline is
// exposed as a Pager over statuses.
type TimelinesClient interface {
	Home(params *QueryParams) *Pager[Status]
	Public(local bool, params *QueryParams) *Pager[Status]
	Tag(tag string, params *QueryParams) *Pager[Status]
	List(id string, params *QueryParams) *Pager[Status]
}

// NotificationsClient covers the /api/v1/notifications surface.
type NotificationsClient interface {
	List(params *QueryParams) *Pager[Notification]
	Get(ctx context.Context, id string) (*Notification, error)
	Clear(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
}

// ListsClient covers the /api/v1/lists surface.
type ListsClient interface {
	List(ctx context.Context) ([]List, error)
	Get(ctx context.Context, id string) (*List, error)
	Create(ctx context.Context, request *ListCreateRequest) (*List, error)
	Update(ctx context.Context, id string, request *ListCreateRequest) (*List, error)
	Delete(ctx context.Context, id string) error
	Accounts(id string, params *QueryParams) *Pager[Account]
	AddAccounts(ctx context.Context, id string, accountIDs []string) error
	RemoveAccounts(ctx context.Context, id string, accountIDs []string) error
}

// SearchClient covers /api/v2/search.
type SearchClient interface {
	Search(ctx context.Context, query string, searchType string, resolve bool) (*Results, error)
}

// InstanceClient covers the /api/v1/instance surface.
type InstanceClient interface {
	Get(ctx context.Context) (*Instance, error)
	Peers(ctx context.Context) ([]string, error)
	Activity(ctx context.Context) ([]InstanceActivity, error)
}

// MediaClient covers the /api/v1/media surface.
type MediaClient interface {
	Upload(ctx context.Context, file io.Reader, filename string, description string) (*Attachment, error)
	Update(ctx context.Context, id string, request *MediaUpdateRequest) (*Attachment, error)
}

// AppsClient covers OAuth application registration.
type AppsClient interface {
	Register(ctx context.Context, request *AppRegisterRequest) (*Application, error)
	VerifyCredentials(ctx context.Context) (*Application, error)
}

// PollsClient covers the /api/v1/polls surface.
type PollsClient interface {
	Get(ctx context.Context, id string) (*Poll, error)
	Vote(ctx context.Context, id string, choices []int) (*Poll, error)
}

// ReportsClient covers /api/v1/reports.
type ReportsClient interface {
	Create(ctx context.Context, request *ReportRequest) (*Report, error)
}

// StreamingClient builds streaming sessions. The plain methods connect over
// the SSE endpoint; the Socket variants use the WebSocket endpoint and
// share the same session machinery. Sessions are returned unconnected —
// register handlers with On, then call Connect.
type StreamingClient interface {
	User(opts ...StreamOption) *StreamSession
	Public(local bool, opts ...StreamOption) *StreamSession
	Hashtag(tag string, opts ...StreamOption) *StreamSession
	List(id string, opts ...StreamOption) *StreamSession

	UserSocket(opts ...StreamOption) *StreamSession
	PublicSocket(local bool, opts ...StreamOption) *StreamSession
	HashtagSocket(tag string, opts ...StreamOption) *StreamSession
	ListSocket(id string, opts ...StreamOption) *StreamSession
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fedi.Client.
//
// # Authentication precedence
//
//  1. AccessToken: used directly as a static Bearer token.
//  2. ClientID/ClientSecret + Username/Password: the OAuth2 password grant
//     against <server>/oauth/token.
//  3. ClientID/ClientSecret: the client_credentials grant (app-level
//     endpoints only).
//  4. No credentials: requests are sent without authentication; only
//     public endpoints will succeed.
//
// Streaming connections attach the access token as a query parameter
// instead of a header, at connect time and on every reconnect.
type Config struct {
	// Server is the base URL of the instance (e.g. "https://mastodon.example").
	// fediclient.New normalizes it by trimming a trailing slash and adding
	// "https://" when no scheme is present.
	Server string

	// AccessToken, if set, is used directly as a Bearer token.
	AccessToken string
	// ClientID and ClientSecret identify a registered OAuth application.
	ClientID     string
	ClientSecret string
	// Username and Password select the OAuth2 password grant.
	Username string
	Password string
	// RefreshToken lets the token manager renew access tokens.
	RefreshToken string

	// HTTPTimeout is the default timeout for REST requests. Streaming
	// connections are never subject to it.
	HTTPTimeout time.Duration
	// RetryMax enables transport retries for transient failures (429 and
	// 5xx). Zero disables retries; backoff policy stays with the caller.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the retry backoff when RetryMax
	// is set.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures the optional GET response cache.
	Cache *CacheConfig
}
