package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// Record is the session payload assembled after a verified sign-in. It lives
// entirely inside the cookie: there is no server-side identity store.
type Record struct {
	SteamID     string `json:"steam_id"`
	PersonaName string `json:"persona_name"`
	Avatar      string `json:"avatar"`
	GameCount   int    `json:"game_count"`
	Level       int    `json:"level"`
}

// Claims is the typed JWT carried by the session cookie.
type Claims struct {
	Record
	jwt.RegisteredClaims
}
