// Package domain contains entities without logic, just meta-data.
package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const MaxNameLen = 36

// ClientID identifies one live connection. It is assigned at connect time
// and stays stable for the connection's lifetime; rooms reference members
// by it but never own the connection.
type ClientID string

type User struct {
	ID   ClientID `json:"id"`
	Name string   `json:"name"`
}

// NewGuest creates the per-connection user with a throwaway display name
// of the form Guest-0042, overridable later at join time.
func NewGuest(id ClientID) *User {
	return &User{ID: id, Name: fmt.Sprintf("Guest-%04d", rand.IntN(10000))}
}

// SetName replaces the display name. Blank input keeps the current name
// and oversized input is truncated; neither is an error for the caller.
func (u *User) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	u.Name = name
}
