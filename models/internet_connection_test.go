package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestIsPendingDeletion(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var conn InternetConnection
	assert.False(t, conn.IsPendingDeletion(now))

	future := now.Add(DeletionGracePeriod)
	conn.ScheduledForDeletion = &future
	assert.True(t, conn.IsPendingDeletion(now))

	past := now.Add(-time.Minute)
	conn.ScheduledForDeletion = &past
	assert.False(t, conn.IsPendingDeletion(now))
}

func TestTimeRemainingFormat(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var conn InternetConnection
	assert.Equal(t, "", conn.TimeRemaining(now))

	at := now.Add(71*time.Hour + 30*time.Minute)
	conn.ScheduledForDeletion = &at
	assert.Equal(t, "71h 30m remaining", conn.TimeRemaining(now))

	at = now.Add(45 * time.Minute)
	conn.ScheduledForDeletion = &at
	assert.Equal(t, "0h 45m remaining", conn.TimeRemaining(now))

	at = now.Add(-time.Second)
	conn.ScheduledForDeletion = &at
	assert.Equal(t, "Pending deletion", conn.TimeRemaining(now))

	conn.ScheduledForDeletion = &now
	assert.Equal(t, "Pending deletion", conn.TimeRemaining(now))
}

func TestNormalizeCanonicalShape(t *testing.T) {
	doc := ConnectionDoc{
		Station: "hilltop",
		StarlinkEmails: bson.A{
			bson.D{{Key: "email", Value: "a@sat.example"}, {Key: "password", Value: "pw1"}},
		},
		VPNIPs: bson.A{
			bson.D{{Key: "ip", Value: "10.0.0.1"}, {Key: "password", Value: "pw2"}},
		},
	}

	conn := doc.Normalize()

	require.Len(t, conn.StarlinkEmails, 1)
	assert.Equal(t, "a@sat.example", conn.StarlinkEmails[0].Email)
	assert.Equal(t, "pw1", conn.StarlinkEmails[0].Password)
	require.Len(t, conn.VPNIPs, 1)
	assert.Equal(t, "10.0.0.1", conn.VPNIPs[0].IP)
	assert.Equal(t, "pw2", conn.VPNIPs[0].Password)
}

func TestNormalizeLegacyStringArrays(t *testing.T) {
	doc := ConnectionDoc{
		Station:        "riverside",
		StarlinkEmails: bson.A{"old@sat.example", ""},
		VPNIPs:         bson.A{"192.168.1.5"},
	}

	conn := doc.Normalize()

	require.Len(t, conn.StarlinkEmails, 1)
	assert.Equal(t, "old@sat.example", conn.StarlinkEmails[0].Email)
	assert.Empty(t, conn.StarlinkEmails[0].Password)
	require.Len(t, conn.VPNIPs, 1)
	assert.Equal(t, "192.168.1.5", conn.VPNIPs[0].IP)
}

func TestNormalizeLegacySingleEmail(t *testing.T) {
	doc := ConnectionDoc{
		Station:             "riverside",
		LegacyStarlinkEmail: "single@sat.example",
	}

	conn := doc.Normalize()

	require.Len(t, conn.StarlinkEmails, 1)
	assert.Equal(t, "single@sat.example", conn.StarlinkEmails[0].Email)

	// the list wins over the legacy field when both exist
	doc.StarlinkEmails = bson.A{"list@sat.example"}
	conn = doc.Normalize()
	require.Len(t, conn.StarlinkEmails, 1)
	assert.Equal(t, "list@sat.example", conn.StarlinkEmails[0].Email)
}

func TestHasCredentials(t *testing.T) {
	var conn InternetConnection
	assert.False(t, conn.HasCredentials())

	conn.StarlinkEmails = []StarlinkAccount{{Email: "   "}}
	assert.False(t, conn.HasCredentials())

	conn.StarlinkEmails = []StarlinkAccount{{Email: "a@sat.example"}}
	assert.True(t, conn.HasCredentials())

	conn = InternetConnection{VPNIPs: []VPNAccess{{IP: "10.0.0.1"}}}
	assert.True(t, conn.HasCredentials())
}

func TestScheduleThenCancelRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	at := now.Add(DeletionGracePeriod)

	conn := InternetConnection{ScheduledForDeletion: &at}
	assert.True(t, conn.IsPendingDeletion(now))

	conn.ScheduledForDeletion = nil
	assert.False(t, conn.IsPendingDeletion(now))
	assert.Equal(t, "", conn.TimeRemaining(now))
}
