package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the repository/handler boundary;
// handlers expose PublicUser instead.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username, compared byte-for-byte (no case folding).
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the outward projection of a User: the id and username
// only. It is the shape returned by /users/register and /users/me.
type PublicUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Public strips the credential fields from a User.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
