// Package jobs runs the scheduled background work: a daily sales summary
// written to the application log for the ops channel.
package jobs

import (
	"log"

	"prorental/internal/services"
	"prorental/internal/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// Start registers the daily jobs and launches the runner. The summary fires
// every morning at 06:00 server time.
func Start() (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc("0 6 * * *", logDailySalesSummary); err != nil {
		return nil, err
	}
	c.Start()
	return &Scheduler{cron: c}, nil
}

// Stop halts the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func logDailySalesSummary() {
	svc := services.StatsService{}
	stats, err := svc.Dashboard()
	if err != nil {
		log.Printf("[JOBS] sales summary gagal: %v", err)
		return
	}

	var total float64
	for _, p := range stats.SalesChart {
		total += p.Sales
	}
	log.Printf("[JOBS] ringkasan penjualan 7 hari: total=%s booking_terbaru=%d",
		utils.FormatMoney(total), len(stats.RecentBookings))
}
