package user

import "time"

// Status is the persisted account presence field. It changes on login,
// logout and connection lifecycle events, and is distinct from the
// in-memory registry that tracks live sockets for delivery.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
	StatusBusy    Status = "Busy"
)

// User is an account record. The chat core only ever reads and writes it
// by id; account management itself belongs to the auth collaborators.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	Status    Status    `json:"status"`
	LastSeen  time.Time `json:"lastSeen"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
