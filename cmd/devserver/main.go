package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/screenmock/internal/devserver"
	"github.com/dmitrijs2005/screenmock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := devserver.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	app := devserver.NewApp(cfg, logger)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
