package utils

import (
    "errors"
    "testing"
)

func TestWidgetTokenRoundTrip(t *testing.T) {
    tok, err := NewWidgetToken("s3cret", "abc123", 5)
    if err != nil {
        t.Fatalf("sign: %v", err)
    }
    wid, err := ParseWidgetToken("s3cret", tok.Token)
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if wid != "abc123" {
        t.Fatalf("wid = %q", wid)
    }
}

func TestWidgetTokenRejected(t *testing.T) {
    tok, err := NewWidgetToken("s3cret", "abc123", 5)
    if err != nil {
        t.Fatal(err)
    }
    expired, err := NewWidgetToken("s3cret", "abc123", -5)
    if err != nil {
        t.Fatal(err)
    }
    cases := map[string]string{
        "wrong secret": "",
        "garbage":      "not.a.jwt",
        "expired":      expired.Token,
    }
    for name, raw := range cases {
        secret := "s3cret"
        if name == "wrong secret" {
            raw, secret = tok.Token, "other"
        }
        if _, err := ParseWidgetToken(secret, raw); !errors.Is(err, ErrInvalidWidgetToken) {
            t.Fatalf("%s: err = %v", name, err)
        }
    }
}

func TestNewWidgetIDUnique(t *testing.T) {
    a, err := NewWidgetID()
    if err != nil {
        t.Fatal(err)
    }
    b, _ := NewWidgetID()
    if len(a) != 32 || a == b {
        t.Fatalf("ids %q %q", a, b)
    }
}
