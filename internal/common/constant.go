package common

// AuthTokenHeaderName is the HTTP header carrying the session token on
// requests and on register/login responses.
const AuthTokenHeaderName = "x-auth"

// AuthScope is the only token scope issued by the server.
const AuthScope = "auth"
