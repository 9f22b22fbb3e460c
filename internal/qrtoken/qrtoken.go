// Package qrtoken issues and verifies the QR payload that binds a
// registration id to the server secret. The payload is
// "<registration_id>|<fingerprint>" where the fingerprint is the first 16 hex
// chars of sha256(id + secret). Verification is a pure predicate.
package qrtoken

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const fingerprintLen = 16

func fingerprint(registrationID, secret string) string {
	sum := sha256.Sum256([]byte(registrationID + secret))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Issue builds the token payload for a registration.
func Issue(registrationID, secret string) string {
	return registrationID + "|" + fingerprint(registrationID, secret)
}

// Verify checks a scanned payload. It never errors: malformed input or a
// fingerprint mismatch returns (false, "").
func Verify(token, secret string) (bool, string) {
	parts := strings.Split(token, "|")
	if len(parts) != 2 {
		return false, ""
	}
	id, provided := parts[0], parts[1]
	if id == "" || provided != fingerprint(id, secret) {
		return false, ""
	}
	return true, id
}

// RenderDataURI rasterizes the payload into a scannable PNG and returns it as
// a data URI for embedding in emails and API responses. Rendering is a
// presentation concern only; the payload string is what gets verified.
func RenderDataURI(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Low, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
