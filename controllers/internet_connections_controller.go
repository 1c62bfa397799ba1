package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/jobs"
	"github.com/wavelinkisp/opsboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type connectionView struct {
	models.InternetConnection `bson:",inline"`
	PendingDeletion           bool   `json:"pendingDeletion"`
	TimeRemaining             string `json:"timeRemaining,omitempty"`
}

func starlinkAccountsFromDTO(in []dto.StarlinkAccountDTO) []models.StarlinkAccount {
	out := make([]models.StarlinkAccount, 0, len(in))
	for _, a := range in {
		email := strings.TrimSpace(a.Email)
		if email == "" {
			continue
		}
		out = append(out, models.StarlinkAccount{Email: email, Password: a.Password})
	}
	return out
}

func vpnAccessFromDTO(in []dto.VPNAccessDTO) []models.VPNAccess {
	out := make([]models.VPNAccess, 0, len(in))
	for _, v := range in {
		ip := strings.TrimSpace(v.IP)
		if ip == "" {
			continue
		}
		out = append(out, models.VPNAccess{IP: ip, Password: v.Password})
	}
	return out
}

// GET /api/internet-connections — connections plus the station list the form
// picks from. Stored legacy shapes are folded into the canonical one here.
func GetInternetConnections() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("internet_connections")
		stationsCol := database.OpenCollection("stations")

		opts := options.Find().SetSort(bson.D{{Key: "station", Value: 1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		now := time.Now().UTC()
		connections := make([]connectionView, 0)
		for cursor.Next(ctx) {
			var doc models.ConnectionDoc
			if err := cursor.Decode(&doc); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			conn := doc.Normalize()
			connections = append(connections, connectionView{
				InternetConnection: conn,
				PendingDeletion:    conn.ScheduledForDeletion != nil,
				TimeRemaining:      conn.TimeRemaining(now),
			})
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		stationCursor, err := stationsCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer stationCursor.Close(ctx)

		stations := make([]models.Station, 0)
		for stationCursor.Next(ctx) {
			var s models.Station
			if err := stationCursor.Decode(&s); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			stations = append(stations, s)
		}
		if err := stationCursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"connections": connections, "stations": stations})
	}
}

// POST /api/internet-connections
func CreateInternetConnection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("internet_connections")

		var body dto.CreateConnectionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		conn := models.InternetConnection{
			ID:             bson.NewObjectID(),
			Station:        strings.TrimSpace(body.Station),
			StarlinkEmails: starlinkAccountsFromDTO(body.StarlinkEmails),
			VPNIPs:         vpnAccessFromDTO(body.VPNIPs),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if legacy := strings.TrimSpace(body.StarlinkEmail); legacy != "" && len(conn.StarlinkEmails) == 0 {
			conn.StarlinkEmails = append(conn.StarlinkEmails, models.StarlinkAccount{Email: legacy})
		}

		if !conn.HasCredentials() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one starlink email or vpn ip is required"})
			return
		}

		if _, err := col.InsertOne(ctx, conn); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, conn)
	}
}

// PATCH /api/internet-connections/:id — the station a connection belongs to
// is fixed at creation; scheduledForDeletion:null cancels a pending delete.
func UpdateInternetConnection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("internet_connections")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid connection id"})
			return
		}

		var body dto.UpdateConnectionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if body.Station != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "station cannot be changed"})
			return
		}

		set := bson.M{}
		unset := bson.M{}
		if body.StarlinkEmails != nil {
			set["starlinkEmails"] = starlinkAccountsFromDTO(*body.StarlinkEmails)
			// fold away the legacy single-email field if the record still has it
			unset["starlinkEmail"] = ""
		}
		if body.VPNIPs != nil {
			set["vpnIps"] = vpnAccessFromDTO(*body.VPNIPs)
		}
		if len(body.ScheduledForDeletion) > 0 {
			if bytes.Equal(bytes.TrimSpace(body.ScheduledForDeletion), []byte("null")) {
				unset["scheduledForDeletion"] = ""
			} else {
				var at time.Time
				if err := json.Unmarshal(body.ScheduledForDeletion, &at); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduledForDeletion timestamp"})
					return
				}
				set["scheduledForDeletion"] = at.UTC()
			}
		}

		if len(set) == 0 && len(unset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		update := bson.M{"$set": set}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		res, err := col.UpdateByID(ctx, id, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
			return
		}

		var doc models.ConnectionDoc
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, doc.Normalize())
	}
}

// DELETE /api/internet-connections/:id — soft delete: the record survives
// for the grace period and only the sweep removes it.
func DeleteInternetConnection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("internet_connections")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid connection id"})
			return
		}

		deleteAt := time.Now().UTC().Add(models.DeletionGracePeriod)
		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"scheduledForDeletion": deleteAt,
			"updatedAt":            time.Now().UTC(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"scheduledForDeletion": deleteAt})
	}
}

// POST /api/internet-connections/cleanup — client-triggered sweep of
// connections whose grace period has elapsed.
func CleanupInternetConnections() gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := jobs.SweepExpiredConnections(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
