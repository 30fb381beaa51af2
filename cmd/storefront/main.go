package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/wnstore/storefront/config"
	"github.com/wnstore/storefront/internal/app"
	"github.com/wnstore/storefront/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load() // local development only, ignored when absent

	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := sigctx.CloseContext(closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
