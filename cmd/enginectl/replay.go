package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/internal/infrastructure/clock"
	"github.com/watermelon/decision-engine/internal/infrastructure/random"
)

func replayCmd() *cobra.Command {
	var (
		batches      int
		seed         uint64
		mode         string
		interval     time.Duration
		fixturesFile string
		remote       remoteOptions
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay canned suppliers, buyers and products through the pipelines",
		Long: `Replay draws one supplier, one buyer and one product per batch from the
fixtures and runs the three pipelines concurrently. Without --target the
pipelines run in process over in-memory logs; with --target they are sent
to a running engined over gRPC.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			validationMode, err := valueobject.ValidationModeFromString(mode)
			if err != nil {
				return err
			}

			data := defaultFixtures
			if fixturesFile != "" {
				if data, err = os.ReadFile(fixturesFile); err != nil {
					return fmt.Errorf("failed to read fixtures: %w", err)
				}
			}
			fixtures, err := ParseFixtures(data)
			if err != nil {
				return err
			}

			rng := random.NewSource(seed)
			fmt.Fprintf(cmd.OutOrStdout(), "Replay seed: %d\n", rng.Seed())

			var engine Engine
			if remote.Target == "" {
				engine = newLocalEngine(validationMode, rng, clock.System{}, newLogger(cmd, cmd.ErrOrStderr()))
			} else {
				remoteEngine, err := dialRemote(remote)
				if err != nil {
					return err
				}
				defer remoteEngine.Close()
				engine = remoteEngine
			}

			r := &replayer{
				engine:   engine,
				fixtures: fixtures,
				rng:      rng,
				clock:    clock.System{},
				out:      cmd.OutOrStdout(),
				interval: interval,
			}
			return r.Run(cmd.Context(), batches)
		},
	}

	cmd.Flags().IntVarP(&batches, "batches", "b", 5, "Number of batches to replay")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Jitter and fixture selection seed (0 picks one)")
	cmd.Flags().StringVar(&mode, "mode", valueobject.ValidationDefaultFill.String(), "Validation mode (default_fill, strict)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause between batches")
	cmd.Flags().StringVarP(&fixturesFile, "fixtures", "f", "", "YAML fixtures file (defaults to the built-in set)")
	cmd.Flags().StringVar(&remote.Target, "target", "", "engined gRPC address; empty runs in process")
	cmd.Flags().StringVar(&remote.Token, "token", os.Getenv("ENGINE_TOKEN"), "Bearer token for --target")
	cmd.Flags().BoolVar(&remote.UseTLS, "tls", false, "Use TLS for --target")
	cmd.Flags().StringVar(&remote.TLS.CAFile, "ca-file", "", "CA certificate for --target")
	cmd.Flags().StringVar(&remote.TLS.CertFile, "cert", "", "Client certificate for mutual TLS")
	cmd.Flags().StringVar(&remote.TLS.KeyFile, "key", "", "Client key for mutual TLS")
	cmd.Flags().BoolVar(&remote.TLS.InsecureSkipVerify, "insecure-skip-verify", false, "Skip server certificate verification")

	return cmd
}

// replayer draws fixtures and narrates each batch.
type replayer struct {
	engine   Engine
	fixtures *Fixtures
	rng      port.RandomSource
	clock    port.Clock
	out      io.Writer
	interval time.Duration
}

type batchResult struct {
	supplier dto.SupplierResponse
	buyer    dto.ChurnResponse
	product  dto.ForecastResponse
}

// Run replays the given number of batches, stopping at the first failure.
func (r *replayer) Run(ctx context.Context, batches int) error {
	for i := 0; i < batches; i++ {
		if i > 0 && r.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.interval):
			}
		}
		if err := r.batch(ctx, i+1); err != nil {
			return fmt.Errorf("batch %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *replayer) batch(ctx context.Context, n int) error {
	supplier := r.fixtures.Suppliers[r.rng.IntRange(0, len(r.fixtures.Suppliers)-1)]
	buyer := r.fixtures.Buyers[r.rng.IntRange(0, len(r.fixtures.Buyers)-1)]
	product := r.fixtures.Products[r.rng.IntRange(0, len(r.fixtures.Products)-1)]

	var res batchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.supplier, err = r.engine.OnboardSupplier(gctx, supplier)
		return err
	})
	g.Go(func() error {
		var err error
		res.buyer, err = r.engine.AnalyzeChurn(gctx, buyer.Request(r.clock.Now()))
		return err
	})
	g.Go(func() error {
		var err error
		res.product, err = r.engine.ForecastDemand(gctx, product)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "--- Processing Batch %d ---\n", n)
	fmt.Fprintf(r.out, "Processing supplier onboarding: %v\n", supplier.SupplierName)
	r.printResult(res.supplier)
	fmt.Fprintf(r.out, "Analyzing churn risk for buyer: %s\n", buyer.Name)
	r.printResult(res.buyer)
	fmt.Fprintf(r.out, "Forecasting demand for product: %v\n", product.ProductID)
	r.printResult(res.product)
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	return nil
}

func (r *replayer) printResult(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(r.out, "Result: %+v\n\n", v)
		return
	}
	fmt.Fprintf(r.out, "Result: %s\n\n", b)
}
