// sync-1c trae la nomenclatura de 1C por OData y la empuja al import de la tienda.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"petshop/internal/adapters/erp/odata"
	"petshop/internal/config"
	"petshop/internal/domain/erp"
	"petshop/internal/platform/httpclient"
	"petshop/internal/platform/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "solo lee 1C y muestra cuántos productos se importarían")
	flag.Parse()

	cfg, err := config.Load()
	log := logger.NewFromEnv().With(map[string]any{"cmd": "sync-1c"})
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *dryRun); err != nil {
		log.Error("sync failed", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger, dryRun bool) error {
	src, err := odata.NewClient(odata.Config{
		BaseURL:     cfg.OneC.ODataURL,
		User:        cfg.OneC.User,
		Password:    cfg.OneC.Password,
		CatalogName: cfg.OneC.CatalogName,
		Top:         cfg.OneC.Top,
		Timeout:     cfg.OneC.Timeout,
	})
	if err != nil {
		return err
	}

	items, err := src.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	records := odata.ToRecords(items)
	log.Info("catalog fetched from 1C", map[string]any{"count": len(records), "catalog": cfg.OneC.CatalogName})

	if dryRun {
		return nil
	}

	shop := httpclient.New(cfg.OneC.Timeout).WithBearer(cfg.Shop.Token)

	var res erp.ImportResult
	if err := shop.DoJSON(ctx, http.MethodPost, cfg.Shop.ImportURL, records, &res); err != nil {
		return err
	}

	log.Info("catalog pushed to shop", map[string]any{
		"imported": res.ImportedCount,
		"message":  res.Message,
		"url":      cfg.Shop.ImportURL,
	})
	return nil
}
