package core

// HTTP header names used when talking to the SANtricity management API.
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// HTTP content types.
const (
	ContentTypeJSON = "application/json"
)

// HTTP authentication scheme prefixes.
const (
	AuthTypeBasic  = "Basic"
	AuthTypeBearer = "Bearer"
)

// errorBodySnippetLimit caps how much of a failed response body is copied
// into a RequestError message. The full body is still kept in Details.
const errorBodySnippetLimit = 200
