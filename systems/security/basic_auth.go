package security

import (
	"encoding/base64"
	"io/ioutil"
	"strings"

	"github.com/go-home-io/ttlock/common"
	"github.com/go-home-io/ttlock/providers"
	"golang.org/x/crypto/bcrypt"
)

// Basic auth users storage.
type basicAuthProvider struct {
	logger          common.ILoggerProvider
	presetPasswords map[string]string
}

// Creates basic auth storage from configured users and optional htpasswd file.
// Passwords must be bcrypt hashes, htpasswd -B generates them.
func newBasicAuthProvider(logger common.ILoggerProvider, users []*providers.SecUser,
	usersFile string) *basicAuthProvider {
	b := &basicAuthProvider{
		logger:          logger,
		presetPasswords: make(map[string]string),
	}

	for _, v := range users {
		b.presetPasswords[v.Name] = v.Password
	}

	if "" != usersFile && !b.readFile(usersFile) {
		b.logger.Debug("_users file is not found", common.LogFileToken, usersFile)
	}

	return b
}

// Checks whether at least one user is configured.
func (b *basicAuthProvider) hasUsers() bool {
	return len(b.presetPasswords) > 0
}

// Authorize validates basic auth header.
func (b *basicAuthProvider) Authorize(headers map[string][]string) (username string, err error) {
	header, ok := authHeader(headers)
	if !ok {
		return "", &ErrNoCredentials{}
	}

	auth := strings.SplitN(header, " ", 2)
	if 2 != len(auth) || "Basic" != auth[0] {
		return "", &ErrNoCredentials{}
	}

	payload, err := base64.StdEncoding.DecodeString(auth[1])
	if err != nil {
		b.logger.Warn("Failed to decode Basic Auth header")
		return "", &ErrMalformedCredentials{Reason: "payload is not base64"}
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if 2 != len(pair) {
		b.logger.Warn("Corrupted Basic Auth header")
		return "", &ErrMalformedCredentials{Reason: "payload has no user separator"}
	}

	pwd, ok := b.presetPasswords[pair[0]]
	if ok && bcrypt.CompareHashAndPassword([]byte(pwd), []byte(pair[1])) == nil {
		b.logger.Debug("Found user", common.LogUserNameToken, pair[0])
		return pair[0], nil
	}

	b.logger.Warn("User is unauthorized", common.LogUserNameToken, pair[0])
	return "", &ErrUnauthorized{User: pair[0]}
}

// Reads htpasswd file.
func (b *basicAuthProvider) readFile(name string) bool {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return false
	}

	for _, v := range strings.Split(string(data), "\n") {
		v = strings.TrimSpace(v)
		if 0 == len(v) || strings.HasPrefix(v, "#") {
			continue
		}

		parts := strings.SplitN(v, ":", 2)
		if 2 != len(parts) {
			continue
		}

		b.presetPasswords[parts[0]] = parts[1]
	}

	return true
}

// Returns Authorization header value.
func authHeader(headers map[string][]string) (string, bool) {
	for k, v := range headers {
		if !strings.EqualFold(k, "Authorization") || 1 != len(v) {
			continue
		}

		return v[0], true
	}

	return "", false
}
