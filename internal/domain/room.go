package domain

import "errors"

// RoomIDLen is the length of a rendezvous code. Codes come from a
// URL-safe alphabet with enough entropy that collisions among live rooms
// are practically impossible; the registry regenerates on the off chance.
const RoomIDLen = 6

var ErrRoomNotFound = errors.New("room not found")

// RoomID is a short random rendezvous code, e.g. "ab12cd".
type RoomID string
