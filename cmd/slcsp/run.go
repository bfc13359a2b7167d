package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"slcsp/config"
	"slcsp/dataset"
	"slcsp/rates"
)

// run reads every input, resolves the request and writes the output table.
// Nothing is written unless all inputs were read successfully.
func run(ctx context.Context, cfg *config.Config, progress rates.Reporter) error {
	start := time.Now()

	plans, zips, err := loadReference(ctx, cfg)
	if err != nil {
		return err
	}
	request, err := dataset.ReadRequest(cfg.Inputs.Request)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	areas, err := rates.BuildRateAreaIndex(plans)
	if err != nil {
		return fmt.Errorf("build rate area index: %w", err)
	}
	locality, err := rates.BuildZipLocalityIndex(zips)
	if err != nil {
		return fmt.Errorf("build zip index: %w", err)
	}
	log.Printf("Indexed %d plans into %d Silver rate areas, %d zip rows into %d ZIP codes",
		len(plans), areas.Len(), len(zips), locality.Len())

	results := rates.Resolve(request, areas, locality, progress)

	if err := dataset.WriteResults(cfg.Output, results); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	s := rates.Summarize(results)
	log.Printf("Wrote %s: %d ZIP codes, %d resolved, %d unresolved in %s",
		cfg.Output, s.Requested, s.Resolved, s.Unresolved, time.Since(start).Round(time.Millisecond))
	return nil
}

// loadReference reads the plan catalog and ZIP mapping from PostgreSQL when
// configured, otherwise from the configured files.
func loadReference(ctx context.Context, cfg *config.Config) ([]rates.PlanRecord, []rates.ZipRecord, error) {
	if cfg.Postgres.Enabled() {
		store, err := dataset.OpenPg(ctx, cfg.Postgres.ConnString(), cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()

		plans, err := store.Plans(ctx)
		if err != nil {
			return nil, nil, err
		}
		zips, err := store.Zips(ctx)
		if err != nil {
			return nil, nil, err
		}
		return plans, zips, nil
	}

	plans, err := dataset.ReadPlans(cfg.Inputs.Plans)
	if err != nil {
		return nil, nil, fmt.Errorf("read plans: %w", err)
	}
	zips, err := dataset.ReadZips(cfg.Inputs.Zips)
	if err != nil {
		return nil, nil, fmt.Errorf("read zips: %w", err)
	}
	return plans, zips, nil
}

// loadReferenceToPg copies the plans and zips files into PostgreSQL.
func loadReferenceToPg(ctx context.Context, cfg *config.Config, initSchema bool) error {
	start := time.Now()

	plans, err := dataset.ReadPlans(cfg.Inputs.Plans)
	if err != nil {
		return fmt.Errorf("read plans: %w", err)
	}
	zips, err := dataset.ReadZips(cfg.Inputs.Zips)
	if err != nil {
		return fmt.Errorf("read zips: %w", err)
	}

	store, err := dataset.OpenPg(ctx, cfg.Postgres.ConnString(), cfg.Postgres.MaxConns)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Println("Connected to PostgreSQL")

	if initSchema {
		if err := store.InitSchema(ctx); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
		log.Println("Schema initialized")
	}

	nPlans, err := store.LoadPlans(ctx, plans)
	if err != nil {
		return err
	}
	nZips, err := store.LoadZips(ctx, zips)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d plans and %d zips in %s", nPlans, nZips, time.Since(start).Round(time.Millisecond))
	return nil
}
