package models

import "time"

// RoomStatus is derived from the room's expiry, never stored.
type RoomStatus string

const (
	RoomActive  RoomStatus = "active"
	RoomExpired RoomStatus = "expired"
)

// ChatRoom is a private, time-limited chat room. Once expired it becomes
// read-only; deletion is left to storage housekeeping.
type ChatRoom struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Emoji        string    `bson:"emoji,omitempty" json:"emoji,omitempty"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
}

func (r ChatRoom) HasPassword() bool {
	return r.PasswordHash != ""
}

func (r ChatRoom) Status(now time.Time) RoomStatus {
	if !now.Before(r.ExpiresAt) {
		return RoomExpired
	}
	return RoomActive
}

// RoomMember records a user having joined a room.
type RoomMember struct {
	RoomID   string    `bson:"room_id" json:"room_id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}
