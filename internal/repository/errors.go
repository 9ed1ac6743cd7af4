// Package repository contains data access logic separated from HTTP
// handlers. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors.
package repository

import "errors"

// ErrUsernameExists is returned when registering a username that is
// already taken. Handlers translate this into an HTTP 400 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidCredentials is returned when a login attempt fails. An
// unknown username and a wrong password both collapse into this value so
// the response does not reveal which one was the case.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrNoteNotFound is returned when a note does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable;
// handlers translate both into an HTTP 404 response.
var ErrNoteNotFound = errors.New("note not found")
