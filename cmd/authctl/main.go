package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/bookinggate/internal/client/cli"
	"github.com/dmitrijs2005/bookinggate/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
