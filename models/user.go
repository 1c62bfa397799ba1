package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

type PageAction string

const (
	ActionView   PageAction = "view"
	ActionAdd    PageAction = "add"
	ActionEdit   PageAction = "edit"
	ActionDelete PageAction = "delete"
)

var AllPageActions = []PageAction{ActionView, ActionAdd, ActionEdit, ActionDelete}

func (a PageAction) Valid() bool {
	switch a {
	case ActionView, ActionAdd, ActionEdit, ActionDelete:
		return true
	}
	return false
}

// PagePermission is the capability set a user holds on one admin page.
type PagePermission struct {
	PageID      string       `bson:"pageId" json:"pageId"`
	Permissions []PageAction `bson:"permissions" json:"permissions"`
}

type User struct {
	ID              bson.ObjectID    `bson:"_id,omitempty" json:"id"`
	Email           string           `bson:"email" json:"email"`
	Name            string           `bson:"name" json:"name"`
	PasswordHash    string           `bson:"passwordHash" json:"-"` // never expose
	Role            Role             `bson:"role" json:"role"`
	Approved        bool             `bson:"approved" json:"approved"`
	PagePermissions []PagePermission `bson:"pagePermissions" json:"pagePermissions"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePermissions returns the actions the user holds on a page.
// Superadmins hold everything regardless of what is stored.
func (u *User) EffectivePermissions(pageID string) []PageAction {
	if u.Role == RoleSuperAdmin {
		out := make([]PageAction, len(AllPageActions))
		copy(out, AllPageActions)
		return out
	}
	for _, p := range u.PagePermissions {
		if p.PageID == pageID {
			return p.Permissions
		}
	}
	return nil
}

func (u *User) Can(pageID string, action PageAction) bool {
	for _, a := range u.EffectivePermissions(pageID) {
		if a == action {
			return true
		}
	}
	return false
}

// TogglePermission adds or removes one action on one page. Turning an action
// on creates the page entry when missing; turning the last action off drops
// the entry entirely.
func TogglePermission(perms []PagePermission, pageID string, action PageAction, enabled bool) []PagePermission {
	idx := -1
	for i, p := range perms {
		if p.PageID == pageID {
			idx = i
			break
		}
	}

	if enabled {
		if idx == -1 {
			return append(perms, PagePermission{PageID: pageID, Permissions: []PageAction{action}})
		}
		for _, a := range perms[idx].Permissions {
			if a == action {
				return perms
			}
		}
		perms[idx].Permissions = append(perms[idx].Permissions, action)
		return perms
	}

	if idx == -1 {
		return perms
	}
	kept := make([]PageAction, 0, len(perms[idx].Permissions))
	for _, a := range perms[idx].Permissions {
		if a != action {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return append(perms[:idx], perms[idx+1:]...)
	}
	perms[idx].Permissions = kept
	return perms
}

type RefreshToken struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"userId"`
	TokenHash  string        `bson:"tokenHash"`
	ExpiresAt  time.Time     `bson:"expiresAt"`
	CreatedAt  time.Time     `bson:"createdAt"`
	RevokedAt  *time.Time    `bson:"revokedAt,omitempty"`
	ReplacedBy *string       `bson:"replacedBy,omitempty"`
}
