package identity

import (
	"net/url"
	"regexp"
	"strings"

	pkgerrors "github.com/trophyroom/backend/pkg/errors"
)

const (
	openIDNamespace        = "http://specs.openid.net/auth/2.0"
	openIDIdentifierSelect = "http://specs.openid.net/auth/2.0/identifier_select"

	// CallbackPath is where the provider sends the browser back after the
	// out-of-band sign-in.
	CallbackPath = "/api/auth/steam/callback"

	ModeCancel    = "cancel"
	ModeIDRes     = "id_res"
	ModeCheckAuth = "check_authentication"
)

// callbackParams is the full signed assertion the provider hands back. All of
// it is re-posed to the provider during verification.
var callbackParams = []string{
	"openid.ns",
	"openid.mode",
	"openid.op_endpoint",
	"openid.claimed_id",
	"openid.identity",
	"openid.return_to",
	"openid.response_nonce",
	"openid.assoc_handle",
	"openid.signed",
	"openid.sig",
}

var claimedIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(\d+)$`)

// LoginRedirectURL builds the checkid_setup redirect that starts the
// handshake. The provider substitutes the real identity for the
// identifier_select placeholders once the user signs in.
func LoginRedirectURL(endpoint, realm string) string {
	returnTo := strings.TrimRight(realm, "/") + CallbackPath

	params := url.Values{}
	params.Set("openid.ns", openIDNamespace)
	params.Set("openid.mode", "checkid_setup")
	params.Set("openid.return_to", returnTo)
	params.Set("openid.realm", realm)
	params.Set("openid.identity", openIDIdentifierSelect)
	params.Set("openid.claimed_id", openIDIdentifierSelect)

	return endpoint + "?" + params.Encode()
}

// ExtractSteamID validates the claimed identity URL and returns the embedded
// numeric identifier. Rejection happens before any network call.
func ExtractSteamID(claimedID string) (string, error) {
	match := claimedIDPattern.FindStringSubmatch(strings.TrimSpace(claimedID))
	if match == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "claimed id does not match the provider identity pattern")
	}
	return match[1], nil
}

// VerificationParams collects every assertion parameter from the callback
// query and overrides the mode, so the provider re-checks its own signature.
func VerificationParams(query url.Values) url.Values {
	params := url.Values{}
	for _, key := range callbackParams {
		params.Set(key, query.Get(key))
	}
	params.Set("openid.mode", ModeCheckAuth)
	return params
}
