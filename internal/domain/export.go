package domain

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TripSummary is a single row in the trip export.
// It is a flat, denormalized view: one row per trip with its destination
// fields repeated and its activities and expenses reduced to aggregates.
type TripSummary struct {
	TripID        int64
	TripTitle     string
	StartDate     time.Time
	EndDate       time.Time
	DestinationID int64
	City          string
	Country       string

	ActivityCount int
	ExpenseCount  int
	ExpenseTotal  decimal.Decimal
}

// SummaryCSVHeader is the first row of every CSV export.
var SummaryCSVHeader = []string{
	"trip_id", "trip_title", "start_date", "end_date",
	"destination_id", "city", "country",
	"activity_count", "expense_count", "expense_total",
}

// Record returns s as a CSV row matching SummaryCSVHeader. The total keeps
// two decimal places.
func (s TripSummary) Record() []string {
	return []string{
		strconv.FormatInt(s.TripID, 10),
		s.TripTitle,
		s.StartDate.Format(DateLayout),
		s.EndDate.Format(DateLayout),
		strconv.FormatInt(s.DestinationID, 10),
		s.City,
		s.Country,
		strconv.Itoa(s.ActivityCount),
		strconv.Itoa(s.ExpenseCount),
		s.ExpenseTotal.StringFixed(2),
	}
}

// WriteSummariesCSV writes the header and one row per summary to w.
func WriteSummariesCSV(w io.Writer, rows []TripSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryCSVHeader); err != nil {
		return fmt.Errorf("domain.WriteSummariesCSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("domain.WriteSummariesCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("domain.WriteSummariesCSV: %w", err)
	}
	return nil
}
