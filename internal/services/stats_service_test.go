package services

import (
	"testing"
	"time"

	"prorental/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var detailColumns = []string{
	"id", "start_date", "end_date", "duration_in_days", "total_price",
	"pickup_location", "notes", "status", "source",
	"created_at", "updated_at",
	"u_id", "u_name", "u_email", "u_phone",
	"i_id", "i_brand", "i_model", "i_year", "i_price", "i_image", "i_status", "i_owner",
	"v_id", "v_type", "v_brand", "v_model", "v_year", "v_price", "v_image", "v_status", "v_owner",
}

func detailRow(rows *sqlmock.Rows, id int64, status string, total float64, createdAt time.Time, userName string, itemBrand string) *sqlmock.Rows {
	var iID, iBrand, iModel any
	if itemBrand != "" {
		iID, iBrand, iModel = id, itemBrand, "X100"
	}
	return rows.AddRow(
		id, createdAt, createdAt.AddDate(0, 0, 1), 1, total,
		"Jakarta", "", status, "",
		createdAt, createdAt,
		7, userName, "u@mail.com", "0800",
		iID, iBrand, iModel, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, nil, nil, nil,
	)
}

func TestStatsDashboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)

	sales := sqlmock.NewRows([]string{"day", "sales"}).
		AddRow(today.AddDate(0, 0, -2), 7200.0).
		AddRow(today, 2400.0)
	mock.ExpectQuery("SUM\\(total_price\\)").WillReturnRows(sales)

	recent := sqlmock.NewRows(detailColumns)
	recent = detailRow(recent, 3, "confirmed", 2400, today, "Budi", "Canon")
	recent = detailRow(recent, 2, "cancelled", 7200, today.AddDate(0, 0, -2), "Sari", "")
	recent = detailRow(recent, 1, "completed", 4800, today.AddDate(0, 0, -5), "Budi", "Nikon")
	mock.ExpectQuery("FROM bookings b").WillReturnRows(recent)

	svc := StatsService{
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return now },
	}

	stats, err := svc.Dashboard()
	require.NoError(t, err)

	// exactly seven buckets ending today, zero-filled
	require.Len(t, stats.SalesChart, 7)
	require.Equal(t, today.AddDate(0, 0, -6).Format("02 Jan"), stats.SalesChart[0].Date)
	require.Equal(t, "28 Aug", stats.SalesChart[6].Date)
	require.Equal(t, 2400.0, stats.SalesChart[6].Sales)
	require.Equal(t, 7200.0, stats.SalesChart[4].Sales)
	require.Equal(t, 0.0, stats.SalesChart[5].Sales)

	// only the two newest bookings are surfaced
	require.Len(t, stats.RecentBookings, 2)
	require.Equal(t, "Canon X100", stats.RecentBookings[0].Name)
	require.Equal(t, "Budi", stats.RecentBookings[0].User)
	require.Equal(t, "N/A", stats.RecentBookings[1].Name)
	require.Equal(t, 2, stats.RecentBookings[1].DaysAgo)

	// cancelled rows read as failed payments, statuses are capitalized
	require.Len(t, stats.Transactions, 3)
	require.Equal(t, "Payment from Budi", stats.Transactions[0].Label)
	require.Equal(t, "Confirmed", stats.Transactions[0].Status)
	require.Equal(t, "Payment failed from #2", stats.Transactions[1].Label)
	require.Equal(t, "Cancelled", stats.Transactions[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}
