package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavelinkisp/opsboard/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func expenseOn(day string, status models.ExpenseStatus) models.Expense {
	d, _ := time.Parse("2006-01-02", day)
	return models.Expense{
		ID:          bson.NewObjectID(),
		Description: "test",
		Category:    "Fuel",
		Amount:      100,
		Date:        d,
		Status:      status,
	}
}

func TestBuildExpensesCSVQuoting(t *testing.T) {
	station := "Hilltop"
	e := models.Expense{
		ID:          bson.NewObjectID(),
		Description: "Fuel, diesel",
		Category:    "Fuel",
		Station:     &station,
		Amount:      1500.5,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:      models.ExpenseFullyPaid,
	}

	out := BuildExpensesCSV([]models.Expense{e})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "ID,Description,Category,Station,Amount,Date,Status", lines[0])
	assert.Contains(t, lines[1], `"Fuel, diesel"`)
	assert.Contains(t, lines[1], "1500.50")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[1], "fully-paid")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestBuildExpensesCSVGeneralStation(t *testing.T) {
	e := expenseOn("2024-01-15", models.ExpenseFullyPaid)
	e.Station = nil

	out := BuildExpensesCSV([]models.Expense{e})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "General")
}

func TestBuildExpensesCSVEmpty(t *testing.T) {
	out := BuildExpensesCSV(nil)
	assert.Equal(t, "ID,Description,Category,Station,Amount,Date,Status", out)
}

func TestFilterExpensesByStatus(t *testing.T) {
	items := []models.Expense{
		expenseOn("2024-01-10", models.ExpenseFullyPaid),
		expenseOn("2024-01-11", models.ExpensePartiallyPaid),
	}

	out := FilterExpenses(items, ExpenseExportFilter{Status: "fully-paid"})
	require.Len(t, out, 1)
	assert.Equal(t, models.ExpenseFullyPaid, out[0].Status)
}

func TestFilterExpensesByMonth(t *testing.T) {
	items := []models.Expense{
		expenseOn("2024-01-01", models.ExpenseFullyPaid),
		expenseOn("2024-01-31", models.ExpenseFullyPaid),
		expenseOn("2024-02-01", models.ExpenseFullyPaid),
		expenseOn("2023-12-31", models.ExpenseFullyPaid),
	}

	out := FilterExpenses(items, ExpenseExportFilter{Month: "2024-01"})
	assert.Len(t, out, 2)
}

func TestFilterExpensesMonthWinsOverRange(t *testing.T) {
	items := []models.Expense{
		expenseOn("2024-01-15", models.ExpenseFullyPaid),
		expenseOn("2024-03-15", models.ExpenseFullyPaid),
	}

	out := FilterExpenses(items, ExpenseExportFilter{
		Month:    "2024-01",
		DateFrom: "2024-03-01",
		DateTo:   "2024-03-31",
	})
	require.Len(t, out, 1)
	assert.Equal(t, "2024-01-15", out[0].Date.Format("2006-01-02"))
}

func TestFilterExpensesDateRangeInclusive(t *testing.T) {
	items := []models.Expense{
		expenseOn("2024-01-09", models.ExpenseFullyPaid),
		expenseOn("2024-01-10", models.ExpenseFullyPaid),
		expenseOn("2024-01-20", models.ExpenseFullyPaid),
		expenseOn("2024-01-21", models.ExpenseFullyPaid),
	}

	out := FilterExpenses(items, ExpenseExportFilter{
		DateFrom: "2024-01-10",
		DateTo:   "2024-01-20",
	})
	assert.Len(t, out, 2)
}

func TestExpenseExportFilename(t *testing.T) {
	assert.Equal(t, "expenses", ExpenseExportFilename(ExpenseExportFilter{}))
	assert.Equal(t, "expenses_January_2024", ExpenseExportFilename(ExpenseExportFilter{Month: "2024-01"}))
	assert.Equal(t, "expenses_fully-paid", ExpenseExportFilename(ExpenseExportFilter{Status: "fully-paid"}))
	assert.Equal(t, "expenses_January_2024_fully-paid",
		ExpenseExportFilename(ExpenseExportFilter{Month: "2024-01", Status: "fully-paid"}))
	assert.Equal(t, "expenses_2024-01-01_to_2024-02-01",
		ExpenseExportFilename(ExpenseExportFilter{DateFrom: "2024-01-01", DateTo: "2024-02-01"}))
	assert.Equal(t, "expenses_start_to_2024-02-01",
		ExpenseExportFilename(ExpenseExportFilter{DateTo: "2024-02-01"}))
	assert.Equal(t, "expenses_2024-01-01_to_now",
		ExpenseExportFilename(ExpenseExportFilter{DateFrom: "2024-01-01"}))
}
