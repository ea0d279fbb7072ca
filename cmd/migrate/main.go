package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-MovingService/internal/config"
	"github.com/m04kA/SMC-MovingService/migrations"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

// gooseLogger направляет вывод goose в общий логгер сервиса
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatal(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Info(format, v...) }

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("goose: failed to open database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose: set dialect: %v", err)
	}

	if err := goose.RunContext(context.Background(), command, db, ".", args...); err != nil {
		log.Fatal("goose %s: %v", command, err)
	}

	log.Info("goose %s: done (host=%s, db=%s)", command, cfg.Database.Host, cfg.Database.DBName)
}
