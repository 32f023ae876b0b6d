package model

import "github.com/golang-jwt/jwt/v5"

// Token scopes. The scope claim prevents token-type confusion: a refresh
// token can never be presented where an access token is required and
// vice versa.
const (
	ScopeAccessToken  = "access_token"
	ScopeRefreshToken = "refresh_token"
)

// AppClaims is the payload carried by every token this API issues.
// Subject holds the author's email.
type AppClaims struct {
	AuthorID int    `json:"author_id"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}
