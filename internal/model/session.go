package model

import "time"

// Session is a server-side login session record. The session ID also
// travels inside the JWT (as the jti claim), so logging out — or, for
// ephemeral sessions, restarting the process — genuinely revokes the
// token even though the JWT itself is still cryptographically valid.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
