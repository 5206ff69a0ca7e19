package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/contactkeeper/internal/client/cli"
	"github.com/dmitrijs2005/contactkeeper/internal/client/config"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

func main() {

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.New(logging.FormatConsole, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
