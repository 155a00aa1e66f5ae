// reconcile rebuilds the balance snapshots from the movement log.
//
// Usage: go run ./cmd/reconcile [-dry-run] [-cartridge <id>]
// -dry-run reports the diff without writing; -cartridge narrows the pass to
// one cartridge model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/campus-it/printstock/internal/application/ledger"
	"github.com/campus-it/printstock/internal/infrastructure/postgres"
	"github.com/campus-it/printstock/pkg/config"
	"github.com/campus-it/printstock/pkg/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report the diff without writing")
	cartridge := flag.String("cartridge", "", "narrow the pass to one cartridge model id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	uc := ledger.NewReconcileUseCase(postgres.NewTxRunner(pool))
	report, err := uc.Reconcile(ctx, ledger.ReconcileOptions{
		DryRun:           *dryRun,
		CartridgeModelID: *cartridge,
	})
	if err != nil && report == nil {
		log.Fatal().Err(err).Msg("reconcile")
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))

	if err != nil {
		// Negative recomputed balances: the report was printed, exit nonzero.
		log.Error().Err(err).Msg("movement log is inconsistent, nothing written")
		os.Exit(1)
	}
	if report.DryRun {
		log.Info().
			Int("movements", report.Movements).
			Int("global_diff", report.Global.TotalAffected()).
			Int("building_diff", report.Building.TotalAffected()).
			Msg("dry run, nothing written")
		return
	}
	log.Info().
		Int("movements", report.Movements).
		Int("global_diff", report.Global.TotalAffected()).
		Int("building_diff", report.Building.TotalAffected()).
		Msg("snapshots rebuilt")
}
