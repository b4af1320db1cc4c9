package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "prorental/internal/config"
	"prorental/internal/db"
	router "prorental/internal/http"
	"prorental/internal/jobs"
	"prorental/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	if env.MigrationsPath != "" {
		if err := db.Migrate(env.MigrationsPath, env.DBDSN); err != nil {
			log.Fatalf("Migrasi database gagal: %v", err)
		}
	}

	var store session.Store
	if env.RedisURL != "" {
		rs, err := session.NewRedisStore(env.RedisURL)
		if err != nil {
			log.Fatalf("Gagal konek ke Redis: %v", err)
		}
		defer rs.Close()
		store = rs
	} else {
		log.Println("REDIS_URL kosong, sesi admin disimpan di memori")
		store = session.NewMemoryStore()
	}

	// Router (Gin engine)
	r := router.NewRouter(env, store)

	sched, err := jobs.Start()
	if err != nil {
		log.Fatalf("Gagal memulai scheduler: %v", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
