package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "prorental/internal/config"
	"prorental/internal/domain"
	"prorental/internal/domain/models"
	"prorental/internal/repositories"
	"prorental/internal/utils"
)

// StatsService aggregates the admin dashboard widgets: a seven-day sales
// chart, the two most recent bookings and the six most recent transactions.
type StatsService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	Now         func() time.Time
}

func (s StatsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s StatsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type RecentBooking struct {
	Name    string `json:"name"`
	User    string `json:"user"`
	Email   string `json:"email"`
	Phone   string `json:"phoneNumber"`
	DaysAgo int    `json:"daysAgo"`
}

type Transaction struct {
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type AdminStats struct {
	SalesChart     []SalesPoint    `json:"salesChart"`
	RecentBookings []RecentBooking `json:"recentBookings"`
	Transactions   []Transaction   `json:"transactions"`
}

const chartDays = 7
const chartDateLayout = "02 Jan"

// Dashboard builds the stats payload. The chart always has exactly seven
// buckets ending today; days without sales are zero-filled.
func (s StatsService) Dashboard() (AdminStats, error) {
	today := s.now().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(chartDays - 1))

	daily, err := s.bookings().SalesSince(windowStart)
	if err != nil {
		return AdminStats{}, domain.InternalError{Err: err}
	}

	byDay := make(map[string]float64, len(daily))
	for _, d := range daily {
		byDay[d.Day.Format("2006-01-02")] = d.Sales
	}

	chart := make([]SalesPoint, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := windowStart.AddDate(0, 0, i)
		chart = append(chart, SalesPoint{
			Date:  day.Format(chartDateLayout),
			Sales: byDay[day.Format("2006-01-02")],
		})
	}

	recent, err := s.bookings().Recent(6)
	if err != nil {
		return AdminStats{}, domain.InternalError{Err: err}
	}

	stats := AdminStats{
		SalesChart:     chart,
		RecentBookings: make([]RecentBooking, 0, 2),
		Transactions:   make([]Transaction, 0, 6),
	}

	for i, b := range recent {
		if i < 2 {
			stats.RecentBookings = append(stats.RecentBookings, recentBookingOf(b, today))
		}
		stats.Transactions = append(stats.Transactions, transactionOf(b))
	}

	return stats, nil
}

func recentBookingOf(b models.BookingDetail, today time.Time) RecentBooking {
	rb := RecentBooking{Name: "N/A"}
	switch {
	case b.Item != nil:
		rb.Name = strings.TrimSpace(b.Item.Brand + " " + b.Item.Model)
	case b.Vehicle != nil:
		rb.Name = strings.TrimSpace(b.Vehicle.Brand + " " + b.Vehicle.Model)
	}
	if b.User != nil {
		rb.User = b.User.Name
		rb.Email = b.User.Email
		rb.Phone = b.User.Phone
	}
	if ago := int(today.Sub(b.CreatedAt.Truncate(24*time.Hour)).Hours() / 24); ago > 0 {
		rb.DaysAgo = ago
	}
	return rb
}

func transactionOf(b models.BookingDetail) Transaction {
	label := fmt.Sprintf("Payment failed from #%d", b.ID)
	if b.Status != models.BookingCancelled {
		name := "N/A"
		if b.User != nil && b.User.Name != "" {
			name = b.User.Name
		}
		label = fmt.Sprintf("Payment from %s", name)
	}
	return Transaction{
		Label:  label,
		Date:   b.CreatedAt.Format(chartDateLayout),
		Amount: b.TotalPrice,
		Status: capitalize(string(b.Status)),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
