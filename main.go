package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"goassay/adapters/costing"
	"goassay/adapters/excel"
	"goassay/adapters/postgres"
	"goassay/adapters/stats"
	"goassay/app"
	"goassay/internal/config"
	"goassay/internal/migration"
	"goassay/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(context.Background(), db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	comparisons := app.NewComparisonService(app.EngineConfig{
		ConfidenceLevel: cfg.Engine.ConfidenceLevel,
		Quality: stats.QualityConfig{
			SmallSampleThreshold: cfg.Engine.SmallSampleThreshold,
			ImbalanceRatio:       cfg.Engine.ImbalanceRatio,
		},
		MaxParallel: cfg.Engine.MaxParallel,
	})
	experiments := app.NewExperimentService(postgres.NewExperimentRepository(db), comparisons)

	server := ui.NewServer(ui.Dependencies{
		Experiments: experiments,
		Comparisons: comparisons,
		Studies:     postgres.NewStudyRepository(db),
		Catalog:     costing.NewBuiltinCatalog(),
		Reader:      excel.NewDataReader(),
		Reports:     excel.NewReportWriter(),
		EngineCfg:   cfg.Engine,
		ExportDir:   cfg.Paths.ExportDir,
	})

	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
