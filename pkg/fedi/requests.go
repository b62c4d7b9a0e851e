package fedi

// StatusCreateRequest is the payload for posting a new status.
type StatusCreateRequest struct {
	Status      string   `json:"status"`
	InReplyToID string   `json:"in_reply_to_id,omitempty"`
	MediaIDs    []string `json:"media_ids,omitempty"`
	Sensitive   bool     `json:"sensitive,omitempty"`
	SpoilerText string   `json:"spoiler_text,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
	Language    string   `json:"language,omitempty"`
	Poll        *PollRequest `json:"poll,omitempty"`
}

// PollRequest describes a poll attached to a new status.
type PollRequest struct {
	Options    []string `json:"options"`
	ExpiresIn  int64    `json:"expires_in"`
	Multiple   bool     `json:"multiple,omitempty"`
	HideTotals bool     `json:"hide_totals,omitempty"`
}

// AccountUpdateRequest is the payload for PATCH /api/v1/accounts/update_credentials.
type AccountUpdateRequest struct {
	DisplayName *string        `json:"display_name,omitempty"`
	Note        *string        `json:"note,omitempty"`
	Locked      *bool          `json:"locked,omitempty"`
	Bot         *bool          `json:"bot,omitempty"`
	Fields      []AccountField `json:"fields_attributes,omitempty"`
	Source      *AccountSource `json:"source,omitempty"`
}

// ListCreateRequest is the payload for creating or renaming a list.
type ListCreateRequest struct {
	Title         string `json:"title"`
	RepliesPolicy string `json:"replies_policy,omitempty"`
}

// ListAccountsRequest adds or removes accounts from a list.
type ListAccountsRequest struct {
	AccountIDs []string `json:"account_ids"`
}

// FollowRequest tunes an outgoing follow.
type FollowRequest struct {
	Reblogs *bool `json:"reblogs,omitempty"`
	Notify  *bool `json:"notify,omitempty"`
}

// ReportRequest files a moderation report.
type ReportRequest struct {
	AccountID string   `json:"account_id"`
	StatusIDs []string `json:"status_ids,omitempty"`
	Comment   string   `json:"comment,omitempty"`
	Forward   bool     `json:"forward,omitempty"`
}

// MediaUpdateRequest edits an uploaded attachment's metadata.
type MediaUpdateRequest struct {
	Description string `json:"description,omitempty"`
	Focus       string `json:"focus,omitempty"`
}

// PollVoteRequest casts votes in a poll.
type PollVoteRequest struct {
	Choices []int `json:"choices"`
}

// AppRegisterRequest registers an OAuth application with a server.
type AppRegisterRequest struct {
	ClientName   string `json:"client_name"`
	RedirectURIs string `json:"redirect_uris"`
	Scopes       string `json:"scopes,omitempty"`
	Website      string `json:"website,omitempty"`
}
