package controllers

import (
	"fmt"
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

func fetchExpenses(c *gin.Context, filter bson.M) ([]models.Expense, bool) {
	ctx := c.Request.Context()
	col := database.OpenCollection("expenses")

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	defer cursor.Close(ctx)

	expenses := make([]models.Expense, 0)
	for cursor.Next(ctx) {
		var e models.Expense
		if err := cursor.Decode(&e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return nil, false
		}
		expenses = append(expenses, e)
	}
	if err := cursor.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return expenses, true
}

// GET /api/expenses?status&station
func GetExpenses() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if station := strings.TrimSpace(c.Query("station")); station != "" {
			if station == "General" {
				filter["$or"] = bson.A{
					bson.M{"station": nil},
					bson.M{"station": ""},
					bson.M{"station": bson.M{"$exists": false}},
				}
			} else {
				filter["station"] = station
			}
		}

		expenses, ok := fetchExpenses(c, filter)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"expenses": expenses})
	}
}

// GET /api/expenses/export?status&dateFrom&dateTo&month — CSV download.
func ExportExpenses() gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, ok := fetchExpenses(c, bson.M{})
		if !ok {
			return
		}

		filter := utils.ExpenseExportFilter{
			Status:   strings.TrimSpace(c.Query("status")),
			DateFrom: strings.TrimSpace(c.Query("dateFrom")),
			DateTo:   strings.TrimSpace(c.Query("dateTo")),
			Month:    strings.TrimSpace(c.Query("month")),
		}

		body := utils.BuildExpensesCSV(utils.FilterExpenses(expenses, filter))
		filename := utils.ExpenseExportFilename(filter)

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
	}
}

// POST /api/expenses — a fully-paid expense carries no balance.
func CreateExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expenses")

		var body dto.CreateExpenseDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.ExpenseStatus(body.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense status"})
			return
		}

		var station *string
		if body.Station != nil {
			if v := strings.TrimSpace(*body.Station); v != "" {
				station = &v
			}
		}

		balance := body.Balance
		if status == models.ExpenseFullyPaid {
			balance = nil
		}

		now := time.Now().UTC()
		expense := models.Expense{
			ID:          bson.NewObjectID(),
			Description: strings.TrimSpace(body.Description),
			Category:    strings.TrimSpace(body.Category),
			Station:     station,
			Amount:      body.Amount,
			Balance:     balance,
			Date:        body.Date.UTC(),
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := col.InsertOne(ctx, expense); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, expense)
	}
}

// PUT /api/expenses/:id
func UpdateExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expenses")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
			return
		}

		var body dto.UpdateExpenseDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		unset := bson.M{}
		if body.Description != nil {
			v := strings.TrimSpace(*body.Description)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "description cannot be empty"})
				return
			}
			set["description"] = v
		}
		if body.Category != nil {
			set["category"] = strings.TrimSpace(*body.Category)
		}
		if body.Station != nil {
			if v := strings.TrimSpace(*body.Station); v != "" {
				set["station"] = v
			} else {
				unset["station"] = ""
			}
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than zero"})
				return
			}
			set["amount"] = *body.Amount
		}
		if body.Balance != nil {
			set["balance"] = *body.Balance
		}
		if body.Date != nil {
			set["date"] = body.Date.UTC()
		}
		if body.Status != nil {
			status := models.ExpenseStatus(*body.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense status"})
				return
			}
			set["status"] = status
			if status == models.ExpenseFullyPaid {
				delete(set, "balance")
				unset["balance"] = ""
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
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}

		var updated models.Expense
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /api/expenses/:id
func DeleteExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("expenses")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
