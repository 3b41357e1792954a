package main

import (
	"fmt"
	"log"

	"github.com/kartik0x00/Budget-Formula/internal/config"
	"github.com/kartik0x00/Budget-Formula/internal/database"
	"github.com/kartik0x00/Budget-Formula/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s (%s mode)", addr, cfg.Server.Mode)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
