package session

import "net/url"

// OAuth handoff failures come back from the provider as query parameters on
// the redirect URL. They are mapped to a fixed set of user-facing messages,
// consumed once, and the parameters are stripped so a reload does not show
// the error again.

const oauthErrorParam = "error"

var oauthErrorMessages = map[string]string{
	"access_denied":   "Sign-in was cancelled. Please try again.",
	"oauth_failed":    "Google sign-in failed. Please try again.",
	"session_expired": "Your session has expired. Please sign in again.",
	"invalid_account": "This Google account is not part of the family.",
}

const oauthErrorFallback = "Sign-in failed. Please try again."

// ConsumeOAuthError extracts an OAuth error from query, translates it, and
// returns the query with the error parameters removed. ok is false when no
// error parameter was present.
func ConsumeOAuthError(query url.Values) (message string, cleaned url.Values, ok bool) {
	code := query.Get(oauthErrorParam)
	if code == "" {
		return "", query, false
	}

	message, known := oauthErrorMessages[code]
	if !known {
		message = oauthErrorFallback
	}

	cleaned = url.Values{}
	for k, vs := range query {
		if k == oauthErrorParam || k == "error_description" || k == "state" {
			continue
		}
		cleaned[k] = vs
	}
	return message, cleaned, true
}
