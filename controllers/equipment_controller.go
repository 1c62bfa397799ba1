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

func newEquipmentID() string {
	return fmt.Sprintf("EQ-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// GET /api/equipment — status=available covers both available and bought,
// since bought stock is installable.
func GetEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment")

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			if status == string(models.EquipmentAvailable) {
				filter["status"] = bson.M{"$in": bson.A{models.EquipmentAvailable, models.EquipmentBought}}
			} else {
				filter["status"] = status
			}
		}
		if station := strings.TrimSpace(c.Query("station")); station != "" {
			filter["station"] = station
		}
		if batchHex := strings.TrimSpace(c.Query("batchId")); batchHex != "" {
			batchID, err := bson.ObjectIDFromHex(batchHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
				return
			}
			filter["batchId"] = batchID
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			quoted := regexp.QuoteMeta(search)
			filter["$or"] = bson.A{
				bson.M{"name": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"serialNumber": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"equipmentId": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"clientName": bson.M{"$regex": quoted, "$options": "i"}},
			}
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Equipment, 0)
		for cursor.Next(ctx) {
			var e models.Equipment
			if err := cursor.Decode(&e); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, e)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"equipment": items})
	}
}

// POST /api/equipment — one item per serial, written in a single ordered
// InsertMany so a validation failure never leaves a partial batch behind.
func CreateEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment")

		var body dto.CreateEquipmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		serials := make([]string, 0, len(body.SerialNumbers))
		for _, s := range body.SerialNumbers {
			if s = strings.TrimSpace(s); s != "" {
				serials = append(serials, s)
			}
		}
		if len(serials) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one serial number is required"})
			return
		}
		if bad := models.InvalidEquipmentIdentifiers(serials); len(bad) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("invalid serial numbers: %s", strings.Join(bad, ", ")),
			})
			return
		}

		status := models.EquipmentBought
		if body.Status != "" {
			status = models.EquipmentStatus(body.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment status"})
				return
			}
		}

		var batchID *bson.ObjectID
		if body.BatchID != nil && *body.BatchID != "" {
			id, err := bson.ObjectIDFromHex(*body.BatchID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
				return
			}
			batchID = &id
		}

		now := time.Now().UTC()
		docs := make([]interface{}, 0, len(serials))
		created := make([]models.Equipment, 0, len(serials))
		for _, serial := range serials {
			item := models.Equipment{
				ID:           bson.NewObjectID(),
				EquipmentID:  newEquipmentID(),
				Name:         strings.TrimSpace(body.Name),
				Model:        strings.TrimSpace(body.Model),
				SerialNumber: serial,
				Status:       status,
				Cost:         body.Cost,
				Warranty:     body.Warranty,
				Station:      strings.TrimSpace(body.Station),
				BatchID:      batchID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			docs = append(docs, item)
			created = append(created, item)
		}

		if _, err := col.InsertMany(ctx, docs); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "serial number already exists", "field": "serialNumber"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"equipment": created})
	}
}

// PATCH /api/equipment/:id/attach — moves the item to installed and records
// the client it went to.
func AttachEquipmentToClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		var body dto.AttachEquipmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		clientName := strings.TrimSpace(body.ClientName)
		if clientName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clientName cannot be empty"})
			return
		}
		installationType := models.InstallationType(body.InstallationType)
		if !installationType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid installation type"})
			return
		}

		var item models.Equipment
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		if _, err := models.TransitionEquipment(item.Status, models.EquipmentInstalled); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		installDate := time.Now().UTC()
		if body.InstallDate != nil {
			installDate = body.InstallDate.UTC()
		}

		set := bson.M{
			"status":           models.EquipmentInstalled,
			"clientName":       clientName,
			"clientNumber":     strings.TrimSpace(body.ClientNumber),
			"station":          strings.TrimSpace(body.Station),
			"installDate":      installDate,
			"installationType": installationType,
			"updatedAt":        time.Now().UTC(),
		}
		if body.ReplacedEquipmentID != "" {
			set["replacedEquipmentId"] = body.ReplacedEquipmentID
		}

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "status": models.EquipmentInstalled})
	}
}

// PATCH /api/equipment/:id
func UpdateEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		var body dto.UpdateEquipmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = v
		}
		if body.Model != nil {
			set["model"] = strings.TrimSpace(*body.Model)
		}
		if body.Cost != nil {
			set["cost"] = *body.Cost
		}
		if body.Warranty != nil {
			set["warranty"] = *body.Warranty
		}
		if body.Station != nil {
			set["station"] = strings.TrimSpace(*body.Station)
		}
		if body.LastService != nil {
			set["lastService"] = body.LastService.UTC()
		}
		if body.Status != nil {
			to := models.EquipmentStatus(*body.Status)
			if !to.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment status"})
				return
			}

			var item models.Equipment
			if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
				return
			}
			if item.Status != to {
				if _, err := models.TransitionEquipment(item.Status, to); err != nil {
					c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
			}
			set["status"] = to
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /api/equipment/:id — batch-owned installed equipment goes back to
// the pool; everything else is removed for good.
func DeleteEquipment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id"})
			return
		}

		var item models.Equipment
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
			return
		}

		if item.Status == models.EquipmentInstalled && item.BatchID != nil {
			update := bson.M{
				"$set": bson.M{
					"status":    models.EquipmentAvailable,
					"updatedAt": time.Now().UTC(),
				},
				"$unset": bson.M{
					"clientName":          "",
					"clientNumber":        "",
					"station":             "",
					"installDate":         "",
					"installationType":    "",
					"replacedEquipmentId": "",
				},
			}
			if _, err := col.UpdateByID(ctx, id, update); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true, "returnedToBatch": true})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "returnedToBatch": false})
	}
}
