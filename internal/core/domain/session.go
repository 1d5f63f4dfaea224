package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Flash kinds understood by the page templates.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Session is the server-held state bound to a client via the opaque token in
// the session cookie. The admin flag is a cache of the account's privilege at
// login time: a cached true is trusted, a cached false is re-checked against
// the credential store before any admin route is served.
type Session struct {
	ID        string `json:"id"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// Flash is a one-shot message that survives exactly one redirect. It is
// stored next to the session and cleared on first read.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
