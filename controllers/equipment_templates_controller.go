package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func GetEquipmentTemplates() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_templates")

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		templates := make([]models.EquipmentTemplate, 0)
		for cursor.Next(ctx) {
			var t models.EquipmentTemplate
			if err := cursor.Decode(&t); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			templates = append(templates, t)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"templates": templates})
	}
}

func CreateEquipmentTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_templates")

		var body dto.CreateTemplateDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		template := models.EquipmentTemplate{
			ID:            bson.NewObjectID(),
			Name:          strings.TrimSpace(body.Name),
			Model:         strings.TrimSpace(body.Model),
			EquipmentType: strings.TrimSpace(body.EquipmentType),
			DefaultCost:   body.DefaultCost,
			Warranty:      strings.TrimSpace(body.Warranty),
			CreatedAt:     time.Now().UTC(),
		}

		if _, err := col.InsertOne(ctx, template); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "template already exists", "field": "name"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, template)
	}
}

func DeleteEquipmentTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("equipment_templates")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
