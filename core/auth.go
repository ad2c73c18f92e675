package core

import (
	"encoding/base64"
	"net/http"
)

// AuthStrategy is implemented by every authentication mechanism. Apply
// mutates outgoing request headers in place with credentials; Refresh
// re-applies them prior to a retry (for most strategies it is the same
// operation).
type AuthStrategy interface {
	Apply(headers http.Header) error
	Refresh(headers http.Header) error
}

// BasicAuth applies standard HTTP Basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

func (a *BasicAuth) Apply(headers http.Header) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	headers.Set(HeaderAuthorization, AuthTypeBasic+" "+encoded)
	return nil
}

func (a *BasicAuth) Refresh(headers http.Header) error {
	return a.Apply(headers)
}

// JWTAuth applies an already issued bearer token. The token can be swapped
// with UpdateToken to support refresh workflows without rebuilding the
// client.
type JWTAuth struct {
	token string
}

func NewJWTAuth(token string) *JWTAuth {
	return &JWTAuth{token: token}
}

func (a *JWTAuth) Apply(headers http.Header) error {
	headers.Set(HeaderAuthorization, AuthTypeBearer+" "+a.token)
	return nil
}

func (a *JWTAuth) Refresh(headers http.Header) error {
	return a.Apply(headers)
}

// UpdateToken replaces the bearer token used on subsequent requests.
func (a *JWTAuth) UpdateToken(token string) {
	a.token = token
}

// SAMLAuth is a non-functional placeholder documenting the expected
// interface for SAML2 assertions. Constructing it is allowed; invoking it
// always fails.
type SAMLAuth struct {
	Assertion string
}

func NewSAMLAuth(assertion string) *SAMLAuth {
	return &SAMLAuth{Assertion: assertion}
}

func (a *SAMLAuth) Apply(http.Header) error {
	return &AuthenticationError{
		Message: "SAML authentication is a placeholder: provide an assertion handler before enabling",
	}
}

func (a *SAMLAuth) Refresh(headers http.Header) error {
	return a.Apply(headers)
}
