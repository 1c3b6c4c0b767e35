package common

// SessionCookieName is the name of the HTTP-only cookie carrying the
// signed session token.
const SessionCookieName = "ecohack_sid"

// RequestIDHeaderName is echoed on every response and accepted from
// upstream proxies.
const RequestIDHeaderName = "X-Request-ID"
