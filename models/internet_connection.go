package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DeletionGracePeriod is the window between scheduling a connection for
// deletion and the cleanup sweep actually removing it.
const DeletionGracePeriod = 72 * time.Hour

type StarlinkAccount struct {
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password,omitempty" json:"password,omitempty"`
}

type VPNAccess struct {
	IP       string `bson:"ip" json:"ip"`
	Password string `bson:"password,omitempty" json:"password,omitempty"`
}

// InternetConnection is the canonical shape the API serves and stores.
type InternetConnection struct {
	ID                   bson.ObjectID     `bson:"_id,omitempty" json:"_id"`
	Station              string            `bson:"station" json:"station"`
	StarlinkEmails       []StarlinkAccount `bson:"starlinkEmails" json:"starlinkEmails"`
	VPNIPs               []VPNAccess       `bson:"vpnIps" json:"vpnIps"`
	ScheduledForDeletion *time.Time        `bson:"scheduledForDeletion,omitempty" json:"scheduledForDeletion"`
	CreatedAt            time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// ConnectionDoc is the tolerant decode target for stored connections. Older
// records carry starlinkEmails/vpnIps as plain string arrays, and older still
// a single starlinkEmail field; Normalize folds all of them into the
// canonical credential lists so nothing past this boundary branches on shape.
type ConnectionDoc struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"`
	Station              string        `bson:"station"`
	StarlinkEmails       bson.A        `bson:"starlinkEmails,omitempty"`
	LegacyStarlinkEmail  string        `bson:"starlinkEmail,omitempty"`
	VPNIPs               bson.A        `bson:"vpnIps,omitempty"`
	ScheduledForDeletion *time.Time    `bson:"scheduledForDeletion,omitempty"`
	CreatedAt            time.Time     `bson:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt"`
}

func (d *ConnectionDoc) Normalize() InternetConnection {
	conn := InternetConnection{
		ID:                   d.ID,
		Station:              d.Station,
		StarlinkEmails:       make([]StarlinkAccount, 0, len(d.StarlinkEmails)+1),
		VPNIPs:               make([]VPNAccess, 0, len(d.VPNIPs)),
		ScheduledForDeletion: d.ScheduledForDeletion,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}

	for _, el := range d.StarlinkEmails {
		switch v := el.(type) {
		case string:
			if v != "" {
				conn.StarlinkEmails = append(conn.StarlinkEmails, StarlinkAccount{Email: v})
			}
		case bson.D:
			acc := StarlinkAccount{
				Email:    docString(v, "email"),
				Password: docString(v, "password"),
			}
			if acc.Email != "" {
				conn.StarlinkEmails = append(conn.StarlinkEmails, acc)
			}
		}
	}
	if d.LegacyStarlinkEmail != "" && len(conn.StarlinkEmails) == 0 {
		conn.StarlinkEmails = append(conn.StarlinkEmails, StarlinkAccount{Email: d.LegacyStarlinkEmail})
	}

	for _, el := range d.VPNIPs {
		switch v := el.(type) {
		case string:
			if v != "" {
				conn.VPNIPs = append(conn.VPNIPs, VPNAccess{IP: v})
			}
		case bson.D:
			acc := VPNAccess{
				IP:       docString(v, "ip"),
				Password: docString(v, "password"),
			}
			if acc.IP != "" {
				conn.VPNIPs = append(conn.VPNIPs, acc)
			}
		}
	}

	return conn
}

func docString(d bson.D, key string) string {
	for _, e := range d {
		if e.Key == key {
			if s, ok := e.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// HasCredentials reports whether at least one email or IP is non-empty,
// which every connection must satisfy at submission time.
func (c *InternetConnection) HasCredentials() bool {
	for _, a := range c.StarlinkEmails {
		if strings.TrimSpace(a.Email) != "" {
			return true
		}
	}
	for _, v := range c.VPNIPs {
		if strings.TrimSpace(v.IP) != "" {
			return true
		}
	}
	return false
}

func (c *InternetConnection) IsPendingDeletion(now time.Time) bool {
	return c.ScheduledForDeletion != nil && c.ScheduledForDeletion.After(now)
}

// TimeRemaining formats the rest of the grace window as "{H}h {M}m remaining".
// Once the deadline has passed (or arrived) it reads "Pending deletion".
func (c *InternetConnection) TimeRemaining(now time.Time) string {
	if c.ScheduledForDeletion == nil {
		return ""
	}
	left := c.ScheduledForDeletion.Sub(now)
	if left <= 0 {
		return "Pending deletion"
	}
	hours := int(left.Hours())
	minutes := int(left.Minutes()) % 60
	return fmt.Sprintf("%dh %dm remaining", hours, minutes)
}
