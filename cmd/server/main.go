package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server"
	"github.com/dmitrijs2005/contactkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
