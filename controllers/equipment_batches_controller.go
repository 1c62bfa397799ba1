package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type batchWithStats struct {
	models.EquipmentBatch `bson:",inline"`
	Stats                 models.BatchStats `json:"stats"`
}

// batchStatsByID aggregates per-status equipment counts for the given
// batches in one pipeline pass.
func batchStatsByID(ctx context.Context, batchIDs []bson.ObjectID) (map[bson.ObjectID]models.BatchStats, error) {
	equipmentCol := database.OpenCollection("equipment")

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"batchId": bson.M{"$in": batchIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"batchId": "$batchId", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := equipmentCol.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[bson.ObjectID]map[models.EquipmentStatus]int)
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				BatchID bson.ObjectID          `bson:"batchId"`
				Status  models.EquipmentStatus `bson:"status"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		if counts[row.ID.BatchID] == nil {
			counts[row.ID.BatchID] = make(map[models.EquipmentStatus]int)
		}
		counts[row.ID.BatchID][row.ID.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	stats := make(map[bson.ObjectID]models.BatchStats, len(batchIDs))
	for _, id := range batchIDs {
		stats[id] = models.BatchStatsFromCounts(counts[id])
	}
	return stats, nil
}

// GET /api/equipment-batches?filter=all|active|finished
func GetEquipmentBatches() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		batches := make([]models.EquipmentBatch, 0)
		ids := make([]bson.ObjectID, 0)
		for cursor.Next(ctx) {
			var b models.EquipmentBatch
			if err := cursor.Decode(&b); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			batches = append(batches, b)
			ids = append(ids, b.ID)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		stats := map[bson.ObjectID]models.BatchStats{}
		if len(ids) > 0 {
			stats, err = batchStatsByID(ctx, ids)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		tab := strings.TrimSpace(c.Query("filter"))
		out := make([]batchWithStats, 0, len(batches))
		for _, b := range batches {
			s := stats[b.ID]
			switch tab {
			case "active":
				if s.Finished {
					continue
				}
			case "finished":
				if !s.Finished {
					continue
				}
			}
			out = append(out, batchWithStats{EquipmentBatch: b, Stats: s})
		}

		c.JSON(http.StatusOK, gin.H{"batches": out})
	}
}

// GET /api/equipment-batches/:id — batch, stats and its equipment.
func GetEquipmentBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")
		equipmentCol := database.OpenCollection("equipment")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		var batch models.EquipmentBatch
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&batch); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}

		cursor, err := equipmentCol.Find(ctx, bson.M{"batchId": id})
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

		c.JSON(http.StatusOK, gin.H{
			"batch":     batch,
			"stats":     models.ComputeBatchStats(items),
			"equipment": items,
		})
	}
}

func batchFromDTO(body dto.CreateBatchDTO, now time.Time) models.EquipmentBatch {
	return models.EquipmentBatch{
		ID:            bson.NewObjectID(),
		BatchNumber:   strings.TrimSpace(body.BatchNumber),
		Name:          strings.TrimSpace(body.Name),
		EquipmentType: strings.TrimSpace(body.EquipmentType),
		Quantity:      body.Quantity,
		PurchaseDate:  body.PurchaseDate,
		PurchaseCost:  body.PurchaseCost,
		Supplier:      strings.TrimSpace(body.Supplier),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// POST /api/equipment-batches
func CreateEquipmentBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")

		var body dto.CreateBatchDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		batch := batchFromDTO(body, time.Now().UTC())
		if _, err := col.InsertOne(ctx, batch); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "batch number already exists", "field": "batchNumber"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, batch)
	}
}

// POST /api/equipment-batches/create-from-selected — new batch plus a
// batchId stamp on the chosen equipment.
func CreateBatchFromSelected() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")
		equipmentCol := database.OpenCollection("equipment")

		var body dto.CreateBatchFromSelectedDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		equipmentIDs, err := utils.StringsToObjectIDs(body.EquipmentIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment id in selection"})
			return
		}

		batch := batchFromDTO(body.Batch, time.Now().UTC())
		if _, err := col.InsertOne(ctx, batch); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "batch number already exists", "field": "batchNumber"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		res, err := equipmentCol.UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": equipmentIDs}},
			bson.M{"$set": bson.M{"batchId": batch.ID, "updatedAt": time.Now().UTC()}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"batch": batch, "attached": res.ModifiedCount})
	}
}

// PATCH /api/equipment-batches/:id
func UpdateEquipmentBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		var body dto.UpdateBatchDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.BatchNumber != nil {
			v := strings.TrimSpace(*body.BatchNumber)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "batchNumber cannot be empty"})
				return
			}
			set["batchNumber"] = v
		}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = v
		}
		if body.EquipmentType != nil {
			set["equipmentType"] = strings.TrimSpace(*body.EquipmentType)
		}
		if body.Quantity != nil {
			set["quantity"] = *body.Quantity
		}
		if body.PurchaseDate != nil {
			set["purchaseDate"] = body.PurchaseDate.UTC()
		}
		if body.PurchaseCost != nil {
			set["purchaseCost"] = *body.PurchaseCost
		}
		if body.Supplier != nil {
			set["supplier"] = strings.TrimSpace(*body.Supplier)
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "batch number already exists", "field": "batchNumber"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /api/equipment-batches/:id — deleting a batch removes its
// equipment with it.
func DeleteEquipmentBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_batches")
		equipmentCol := database.OpenCollection("equipment")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}

		cascade, err := equipmentCol.DeleteMany(ctx, bson.M{"batchId": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "equipmentDeleted": cascade.DeletedCount})
	}
}
