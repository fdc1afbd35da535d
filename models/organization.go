package models

import (
	"slices"
	"time"
)

// Organization is only consulted as a membership oracle for hackathon permissions.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   string    `json:"owner_id"`
	Admins    []string  `json:"admins"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Organization) IsOwner(userID string) bool {
	return o.OwnerID == userID
}

// IsAdmin: owner or listed admin.
func (o *Organization) IsAdmin(userID string) bool {
	return userID != "" && (o.OwnerID == userID || slices.Contains(o.Admins, userID))
}

func (o *Organization) IsMember(userID string) bool {
	return o.IsAdmin(userID) || slices.Contains(o.Members, userID)
}

// AddAdmin appends userID to the admin list once.
func (o *Organization) AddAdmin(userID string) bool {
	if slices.Contains(o.Admins, userID) {
		return false
	}
	o.Admins = append(o.Admins, userID)
	return true
}
