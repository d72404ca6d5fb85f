package models

// User is the signed-in principal attached to a snapshot. It is owned by the
// identity provider and never persisted with the snapshot.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
