package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/config"
	"github.com/daybreak-coffee/shift-planner/internal/repository"
	"github.com/daybreak-coffee/shift-planner/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var week string

	flag.IntVar(&op, "op", 0, "operation (1: seed random employees, 2: seed coverage week, 3: seed published schedule)")
	flag.IntVar(&n, "n", 5, "number of employees to insert")
	flag.StringVar(&week, "week", "", "any date (YYYY-MM-DD) inside the target week, defaults to the current week")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not actually connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	anchor := time.Now()
	if week != "" {
		loc, err := time.LoadLocation(cfg.Shop.Timezone)
		if err != nil {
			slog.Error("failed to load shop timezone", "error", err)
			return
		}
		anchor, err = time.ParseInLocation("2006-01-02", week, loc)
		if err != nil {
			slog.Error("week must be a date formatted as YYYY-MM-DD", "week", week)
			return
		}
	}

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("employee count must be positive")
		} else {
			seed.SeedEmployees(repo, cfg, n)
		}
	case 2:
		seed.SeedCoverageWeek(repo, cfg, anchor)
	case 3:
		seed.SeedDemoSchedule(repo, cfg, anchor)
	default:
		slog.Error("unknown operation", "op", op)
	}
}
