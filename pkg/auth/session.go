package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SessionTTL is how long an admin session stays valid.
const SessionTTL = 12 * time.Hour

var (
	errTokenFormat    = errors.New("invalid token format")
	errTokenSignature = errors.New("invalid signature")
	errTokenExpired   = errors.New("session expired")
)

// CreateSessionToken returns a signed token for userID that expires at exp.
// Format: base64(userID) "." unix-expiry "." hex(hmac-sha256).
func CreateSessionToken(userID string, exp time.Time, secret []byte) string {
	payload := base64.URLEncoding.EncodeToString([]byte(userID)) + "." + strconv.FormatInt(exp.Unix(), 10)
	return payload + "." + sign(payload, secret)
}

// VerifySessionToken checks the signature and expiry and returns the user ID.
func VerifySessionToken(token string, now time.Time, secret []byte) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i < 0 {
		return "", errTokenFormat
	}
	payload, sig := token[:i], token[i+1:]
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", errTokenSignature
	}

	encodedID, expStr, ok := strings.Cut(payload, ".")
	if !ok {
		return "", errTokenFormat
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return "", errTokenFormat
	}
	if now.Unix() >= exp {
		return "", errTokenExpired
	}
	id, err := base64.URLEncoding.DecodeString(encodedID)
	if err != nil {
		return "", errTokenFormat
	}
	return string(id), nil
}

func sign(payload string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

const sessionCookieName = "nanostack_admin"
const minSecretLen = 32

// SessionCookieName is the admin session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionCookie builds the cookie carrying token. secure should be true behind HTTPS.
func SessionCookie(token string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie returns a cookie that removes the session.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionSecretBytes pads s to at least 32 bytes for signing.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
