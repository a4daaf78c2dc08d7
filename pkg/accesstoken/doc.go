// Package accesstoken implements the ephemeral token registry behind
// secure-download links: the server issues an unguessable token with a fixed
// TTL, embeds it in an emailed link, and validates it when the link is
// followed.
//
// Tokens live only in process memory; persistence across restarts is
// deliberately out of scope. The default policy is multi-use-until-expiry —
// Validate does not consume — with Consume available where a call site wants
// single-use semantics.
package accesstoken
