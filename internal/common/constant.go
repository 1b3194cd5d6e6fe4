package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RetryAfterHeaderName is the trailer carrying the seconds a rate limited
// caller should wait before trying again.
const RetryAfterHeaderName = "retry-after"
