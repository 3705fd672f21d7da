package common

// AuthorizationHeaderName carries the bearer access token on guarded requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the only accepted authorization scheme.
const BearerPrefix = "Bearer "

// RefreshTokenCookieName names the HTTP-only cookie holding the refresh token.
const RefreshTokenCookieName = "refreshToken"
