package models

// Session is the authenticated identity supplied by the auth collaborator.
// No session means sending is disabled; reads stay open.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	RoleBadge RoleBadge `json:"role_badge,omitempty"`
}
