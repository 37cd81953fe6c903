package utils // package utils provides helpers for widget handle tokens

import (
    "crypto/rand"  // secure random number generation
    "encoding/hex" // hex encoding of random ids
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidWidgetToken is returned when a widget handle cannot be verified.
var ErrInvalidWidgetToken = errors.New("invalid widget token")

// WidgetToken is a signed handle to a hosted widget instance.  Clients send
// it back in the X-Widget-Token header on every widget call.
type WidgetToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewWidgetToken signs an HS256 JWT whose "wid" claim names the widget.
func NewWidgetToken(secret, widgetID string, ttlMin int) (WidgetToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "wid": widgetID,
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return WidgetToken{}, err
    }
    return WidgetToken{Token: signed, Exp: exp}, nil
}

// ParseWidgetToken verifies raw and returns the widget id it carries.
func ParseWidgetToken(secret, raw string) (string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil || !tok.Valid {
        return "", ErrInvalidWidgetToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrInvalidWidgetToken
    }
    wid, ok := claims["wid"].(string)
    if !ok || wid == "" {
        return "", ErrInvalidWidgetToken
    }
    return wid, nil
}

// NewWidgetID returns a random 128-bit hex id.
func NewWidgetID() (string, error) {
    return randomHex(16)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
