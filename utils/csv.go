package utils

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/wavelinkisp/opsboard/models"
)

// ExpenseExportFilter narrows the exported rows. Month and the from/to range
// are mutually exclusive; when both arrive, the month wins.
type ExpenseExportFilter struct {
	Status   string
	DateFrom string // YYYY-MM-DD
	DateTo   string // YYYY-MM-DD
	Month    string // YYYY-MM
}

func FilterExpenses(items []models.Expense, f ExpenseExportFilter) []models.Expense {
	out := make([]models.Expense, 0, len(items))

	var from, to time.Time
	var hasFrom, hasTo bool
	if f.Month != "" {
		if m, err := time.Parse("2006-01", f.Month); err == nil {
			from, hasFrom = m, true
			to, hasTo = m.AddDate(0, 1, 0).Add(-time.Nanosecond), true
		}
	} else {
		if f.DateFrom != "" {
			if d, err := time.Parse("2006-01-02", f.DateFrom); err == nil {
				from, hasFrom = d, true
			}
		}
		if f.DateTo != "" {
			if d, err := time.Parse("2006-01-02", f.DateTo); err == nil {
				// inclusive end of day
				to, hasTo = d.AddDate(0, 0, 1).Add(-time.Nanosecond), true
			}
		}
	}

	for _, e := range items {
		if f.Status != "" && string(e.Status) != f.Status {
			continue
		}
		if hasFrom && e.Date.Before(from) {
			continue
		}
		if hasTo && e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// BuildExpensesCSV renders the fixed 7-column export. Fields containing
// commas or quotes come out quoted with embedded quotes doubled; rows are
// joined with \n.
func BuildExpensesCSV(items []models.Expense) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"ID", "Description", "Category", "Station", "Amount", "Date", "Status"})
	for _, e := range items {
		_ = w.Write([]string{
			e.ID.Hex(),
			e.Description,
			e.Category,
			e.StationLabel(),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Date.Format("2006-01-02"),
			string(e.Status),
		})
	}
	w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}

// ExpenseExportFilename derives the download name from the active filter:
// expenses_January_2024, expenses_2024-01-01_to_2024-02-01, expenses_fully-paid,
// or combinations thereof.
func ExpenseExportFilename(f ExpenseExportFilter) string {
	parts := []string{"expenses"}

	if f.Month != "" {
		if m, err := time.Parse("2006-01", f.Month); err == nil {
			parts = append(parts, m.Format("January"), m.Format("2006"))
		}
	} else if f.DateFrom != "" || f.DateTo != "" {
		from := f.DateFrom
		if from == "" {
			from = "start"
		}
		to := f.DateTo
		if to == "" {
			to = "now"
		}
		parts = append(parts, from, "to", to)
	}

	if f.Status != "" {
		parts = append(parts, f.Status)
	}

	return strings.Join(parts, "_")
}
