package identity

import (
	"net/url"
	"testing"
)

func TestLoginRedirectURL(t *testing.T) {
	raw := LoginRedirectURL("https://steamcommunity.com/openid/login", "https://tracker.example.com")

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse redirect url: %v", err)
	}
	query := parsed.Query()

	if got := query.Get("openid.ns"); got != "http://specs.openid.net/auth/2.0" {
		t.Fatalf("unexpected ns %q", got)
	}
	if got := query.Get("openid.mode"); got != "checkid_setup" {
		t.Fatalf("unexpected mode %q", got)
	}
	if got := query.Get("openid.realm"); got != "https://tracker.example.com" {
		t.Fatalf("unexpected realm %q", got)
	}
	if got := query.Get("openid.return_to"); got != "https://tracker.example.com/api/auth/steam/callback" {
		t.Fatalf("unexpected return_to %q", got)
	}
	if got := query.Get("openid.identity"); got != "http://specs.openid.net/auth/2.0/identifier_select" {
		t.Fatalf("unexpected identity %q", got)
	}
	if got := query.Get("openid.claimed_id"); got != "http://specs.openid.net/auth/2.0/identifier_select" {
		t.Fatalf("unexpected claimed_id %q", got)
	}
}

func TestExtractSteamID(t *testing.T) {
	valid := []struct {
		claimed string
		want    string
	}{
		{"https://steamcommunity.com/openid/id/76561198067000000", "76561198067000000"},
		{"http://steamcommunity.com/openid/id/123", "123"},
		{"  https://steamcommunity.com/openid/id/42  ", "42"},
	}
	for _, tc := range valid {
		got, err := ExtractSteamID(tc.claimed)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.claimed, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q got %q", tc.claimed, tc.want, got)
		}
	}

	invalid := []string{
		"",
		"https://steamcommunity.com/openid/id/",
		"https://steamcommunity.com/openid/id/abc",
		"https://steamcommunity.com/openid/id/123/extra",
		"https://evil.example.com/openid/id/123",
		"https://steamcommunity.com.evil.example/openid/id/123",
		"javascript:alert(1)",
	}
	for _, claimed := range invalid {
		if _, err := ExtractSteamID(claimed); err == nil {
			t.Fatalf("%q: expected rejection", claimed)
		}
	}
}

func TestVerificationParamsOverridesMode(t *testing.T) {
	query := url.Values{}
	query.Set("openid.mode", "id_res")
	query.Set("openid.sig", "signature")
	query.Set("openid.signed", "signed,fields")
	query.Set("openid.assoc_handle", "handle")
	query.Set("openid.claimed_id", "https://steamcommunity.com/openid/id/123")

	params := VerificationParams(query)

	if got := params.Get("openid.mode"); got != "check_authentication" {
		t.Fatalf("expected mode override, got %q", got)
	}
	if got := params.Get("openid.sig"); got != "signature" {
		t.Fatalf("expected signature to pass through, got %q", got)
	}
	// Absent assertion fields are re-posed as empty strings, matching what
	// the provider expects for unsigned optional fields.
	if _, ok := params["openid.response_nonce"]; !ok {
		t.Fatalf("expected response_nonce key to be present")
	}
}
