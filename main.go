package main

import (
	"flag"
	"log"

	"lingo_quiz_backend/internal/app"
	"lingo_quiz_backend/internal/config"
	"lingo_quiz_backend/pkg/configwatcher"
	"lingo_quiz_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(reloaded interface{}) {
		if next, ok := reloaded.(*config.Config); ok {
			application.ApplyConfig(next)
		}
	})

	application.Run()
}
