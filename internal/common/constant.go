// Package common contains shared constants and sentinel errors used across
// dailyDo components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer
// credential on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected inside the Authorization header.
const BearerPrefix = "Bearer "
