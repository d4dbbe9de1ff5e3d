package models

import (
	"time"
)

// RoleBadge is a cosmetic badge rendered next to the author name. It carries
// no access-control semantics.
type RoleBadge string

const (
	RoleUser      RoleBadge = "user"
	RoleVIP       RoleBadge = "vip"
	RoleAdmin     RoleBadge = "admin"
	RoleModerator RoleBadge = "moderator"
)

// DonationStatus tracks payment confirmation for super-chat messages.
// A pending donation is displayed as a plain message and never participates
// in tiering, pinning or hype until confirmed.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
)

// Author identifies the sender of a chat message.
type Author struct {
	UserID    string `bson:"user_id" json:"user_id"`
	Name      string `bson:"name" json:"name"`
	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// ChatMessage is a message accepted into a room's live buffer.
type ChatMessage struct {
	ID         string         `bson:"_id" json:"id"`
	RoomID     string         `bson:"room_id" json:"room_id"`
	Author     Author         `bson:"author" json:"author"`
	Content    string         `bson:"content" json:"content"`
	Color      string         `bson:"color" json:"color"`
	RoleBadge  RoleBadge      `bson:"role_badge,omitempty" json:"role_badge,omitempty"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	IsDonation bool           `bson:"is_donation" json:"is_donation"`
	Amount     float64        `bson:"amount,omitempty" json:"amount,omitempty"`
	Status     DonationStatus `bson:"status,omitempty" json:"status,omitempty"`
}

// Donation is the persisted record of a super-chat, tracked independently of
// the in-memory buffer so a confirmation arriving after eviction still lands.
type Donation struct {
	MessageID   string         `bson:"_id" json:"message_id"`
	RoomID      string         `bson:"room_id" json:"room_id"`
	UserID      string         `bson:"user_id" json:"user_id"`
	Amount      float64        `bson:"amount" json:"amount"`
	Status      DonationStatus `bson:"status" json:"status"`
	ChargeID    string         `bson:"charge_id,omitempty" json:"charge_id,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	ConfirmedAt *time.Time     `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
}

// PinnedMessage is a confirmed donation message promoted to a persistent
// slot until ExpiresAt.
type PinnedMessage struct {
	ChatMessage `bson:",inline"`
	ExpiresAt   time.Time `bson:"expires_at" json:"expires_at"`
}

// Overlay is the full-screen takeover shown for top-tier donations.
// At most one is active; a new qualifying donation replaces it.
type Overlay struct {
	Message   ChatMessage `json:"message"`
	ExpiresAt time.Time   `json:"expires_at"`
}
