package httpapi

import (
	"encoding/base64"
	"strings"

	"github.com/mindwell/journal/internal/common"
)

// Credentials are the email/password pair carried in a Basic
// Authorization header.
type Credentials struct {
	Email    string
	Password string
}

// extractBasicCredentials decodes "Basic base64(email:password)".
// Any malformed header is an authentication failure, never a parse error
// surfaced to the client.
func extractBasicCredentials(authorization string) (Credentials, error) {
	scheme, payload, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return Credentials{}, common.ErrUnauthorized
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Credentials{}, common.ErrUnauthorized
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return Credentials{}, common.ErrUnauthorized
	}

	return Credentials{Email: email, Password: password}, nil
}

// extractBearerToken pulls the token out of "Bearer <token>".
func extractBearerToken(authorization string) (string, error) {
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", common.ErrUnauthorized
	}

	return token, nil
}
