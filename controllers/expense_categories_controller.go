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

var defaultExpenseCategories = []string{
	"Fuel",
	"Salaries",
	"Equipment",
	"Rent",
	"Utilities",
	"Transport",
	"Maintenance",
	"Miscellaneous",
}

func GetExpenseCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expense_categories")

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.ExpenseCategory, 0)
		for cursor.Next(ctx) {
			var cat models.ExpenseCategory
			if err := cursor.Decode(&cat); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			categories = append(categories, cat)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func CreateExpenseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expense_categories")

		var body dto.ExpenseCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category := models.ExpenseCategory{
			ID:        bson.NewObjectID(),
			Name:      strings.TrimSpace(body.Name),
			CreatedAt: time.Now().UTC(),
		}

		if _, err := col.InsertOne(ctx, category); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "category already exists", "field": "name"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateExpenseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expense_categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		var body dto.ExpenseCategoryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"name": strings.TrimSpace(body.Name),
		}})
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "category already exists", "field": "name"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteExpenseCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expense_categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /api/expense-categories/seed — idempotent upsert of the default set.
func SeedExpenseCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expense_categories")

		created := 0
		for _, name := range defaultExpenseCategories {
			res, err := col.UpdateOne(ctx,
				bson.M{"name": name},
				bson.M{"$setOnInsert": bson.M{
					"_id":       bson.NewObjectID(),
					"name":      name,
					"createdAt": time.Now().UTC(),
				}},
				options.UpdateOne().SetUpsert(true),
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if res.UpsertedCount > 0 {
				created++
			}
		}

		c.JSON(http.StatusOK, gin.H{"created": created})
	}
}
