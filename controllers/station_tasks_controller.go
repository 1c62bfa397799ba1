package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func taskTechniciansFromDTO(in []dto.TaskTechnicianDTO) ([]models.TaskTechnician, error) {
	out := make([]models.TaskTechnician, 0, len(in))
	for _, t := range in {
		id, err := bson.ObjectIDFromHex(t.TechnicianID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.TaskTechnician{
			TechnicianID: id,
			Name:         strings.TrimSpace(t.Name),
			Phone:        strings.TrimSpace(t.Phone),
		})
	}
	return out, nil
}

// GET /api/station-tasks?station&status
func GetStationTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("station_tasks")

		filter := bson.M{}
		if station := strings.TrimSpace(c.Query("station")); station != "" {
			if id, err := bson.ObjectIDFromHex(station); err == nil {
				filter["stationId"] = id
			} else {
				filter["stationName"] = station
			}
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		tasks := make([]models.StationTask, 0)
		for cursor.Next(ctx) {
			var t models.StationTask
			if err := cursor.Decode(&t); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			tasks = append(tasks, t)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
	}
}

// POST /api/station-tasks — created pending; the station name is snapshotted
// onto the task so list views need no join.
func CreateStationTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("station_tasks")
		stationsCol := database.OpenCollection("stations")

		var body dto.CreateStationTaskDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		stationID, err := bson.ObjectIDFromHex(body.StationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station id"})
			return
		}

		var station models.Station
		if err := stationsCol.FindOne(ctx, bson.M{"_id": stationID}).Decode(&station); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "station not found"})
			return
		}

		technicians, err := taskTechniciansFromDTO(body.Technicians)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid technician id"})
			return
		}

		now := time.Now().UTC()
		task := models.StationTask{
			ID:          bson.NewObjectID(),
			Title:       strings.TrimSpace(body.Title),
			StationID:   station.ID,
			StationName: station.Name,
			Description: body.Description,
			Status:      models.TaskPending,
			Technicians: technicians,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := col.InsertOne(ctx, task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, task)
	}
}

// PATCH /api/station-tasks/:id — completedAt tracks the done status.
func UpdateStationTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("station_tasks")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
			return
		}

		var body dto.UpdateStationTaskDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		unset := bson.M{}
		if body.Title != nil {
			v := strings.TrimSpace(*body.Title)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
				return
			}
			set["title"] = v
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Technicians != nil {
			technicians, err := taskTechniciansFromDTO(*body.Technicians)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid technician id"})
				return
			}
			set["technicians"] = technicians
		}
		if body.Status != nil {
			status := models.TaskStatus(*body.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task status"})
				return
			}
			set["status"] = status
			if status == models.TaskDone {
				set["completedAt"] = time.Now().UTC()
			} else {
				unset["completedAt"] = ""
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
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}

		var updated models.StationTask
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /api/station-tasks/:id
func DeleteStationTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("station_tasks")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
