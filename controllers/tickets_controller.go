package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func newTicketID() string {
	return fmt.Sprintf("TKT-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// GET /api/tickets?page&limit&status&category&station&search
func GetTickets() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("tickets")

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}
		skip := int64((page - 1) * limit)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if station := strings.TrimSpace(c.Query("station")); station != "" {
			filter["station"] = station
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			quoted := regexp.QuoteMeta(search)
			filter["$or"] = bson.A{
				bson.M{"ticketId": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"clientName": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"clientNumber": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"houseNumber": bson.M{"$regex": quoted, "$options": "i"}},
			}
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "dateTimeReported", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		tickets := make([]models.Ticket, 0)
		for cursor.Next(ctx) {
			var t models.Ticket
			if err := cursor.Decode(&t); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			t.Normalize()
			tickets = append(tickets, t)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		totalPages := (total + int64(limit) - 1) / int64(limit)

		c.JSON(http.StatusOK, gin.H{
			"tickets": tickets,
			"pagination": gin.H{
				"total":      total,
				"totalPages": totalPages,
				"page":       page,
				"limit":      limit,
			},
		})
	}
}

// POST /api/tickets — created open.
func CreateTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("tickets")

		var body dto.CreateTicketDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		reported := now
		if body.DateTimeReported != nil {
			reported = body.DateTimeReported.UTC()
		}
		technicians := body.Technicians
		if technicians == nil {
			technicians = []string{}
		}

		ticket := models.Ticket{
			ID:                 bson.NewObjectID(),
			TicketID:           newTicketID(),
			ClientName:         strings.TrimSpace(body.ClientName),
			ClientNumber:       strings.TrimSpace(body.ClientNumber),
			Station:            strings.TrimSpace(body.Station),
			HouseNumber:        strings.TrimSpace(body.HouseNumber),
			Category:           strings.TrimSpace(body.Category),
			Status:             models.TicketOpen,
			DateTimeReported:   reported,
			ProblemDescription: body.ProblemDescription,
			Technicians:        technicians,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if _, err := col.InsertOne(ctx, ticket); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, ticket)
	}
}

// PATCH /api/tickets/:id — status moves are free-form; resolution fields
// only live on closed tickets.
func UpdateTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("tickets")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
			return
		}

		var body dto.UpdateTicketDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		unset := bson.M{}
		if body.ClientName != nil {
			v := strings.TrimSpace(*body.ClientName)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "clientName cannot be empty"})
				return
			}
			set["clientName"] = v
		}
		if body.ClientNumber != nil {
			set["clientNumber"] = strings.TrimSpace(*body.ClientNumber)
		}
		if body.Station != nil {
			set["station"] = strings.TrimSpace(*body.Station)
		}
		if body.HouseNumber != nil {
			set["houseNumber"] = strings.TrimSpace(*body.HouseNumber)
		}
		if body.Category != nil {
			set["category"] = strings.TrimSpace(*body.Category)
		}
		if body.ProblemDescription != nil {
			set["problemDescription"] = *body.ProblemDescription
		}
		if body.Technicians != nil {
			set["technicians"] = *body.Technicians
			// retire the legacy singular field on the way through
			unset["technician"] = ""
		}

		if body.Status != nil {
			status := models.TicketStatus(*body.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket status"})
				return
			}
			set["status"] = status
			if status == models.TicketClosed {
				resolvedAt := time.Now().UTC()
				if body.ResolvedAt != nil {
					resolvedAt = body.ResolvedAt.UTC()
				}
				set["resolvedAt"] = resolvedAt
				if body.ResolutionNotes != nil {
					set["resolutionNotes"] = *body.ResolutionNotes
				}
			} else {
				unset["resolvedAt"] = ""
				unset["resolutionNotes"] = ""
			}
		} else if body.ResolutionNotes != nil {
			set["resolutionNotes"] = *body.ResolutionNotes
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
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /api/tickets/:id
func DeleteTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("tickets")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
