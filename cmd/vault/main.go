package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/passvault/internal/vault"
	"github.com/dmitrijs2005/passvault/internal/vault/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := vault.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
