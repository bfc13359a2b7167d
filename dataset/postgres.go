package dataset

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"slcsp/rates"
)

//go:embed sql/schema.sql
var schema string

// PgStore reads and loads the reference datasets in PostgreSQL.
type PgStore struct {
	pool *pgxpool.Pool
}

// OpenPg connects to PostgreSQL and verifies the connection.
func OpenPg(ctx context.Context, connStr string, maxConns int32) (*PgStore, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

func (s *PgStore) Close() {
	s.pool.Close()
}

// InitSchema creates the plans and zips tables if they do not exist.
func (s *PgStore) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// LoadPlans replaces the contents of the plans table with plans.
func (s *PgStore) LoadPlans(ctx context.Context, plans []rates.PlanRecord) (int64, error) {
	return s.replace(ctx, "plans", []string{colMetalLevel, colRate, colRateArea},
		pgx.CopyFromSlice(len(plans), func(i int) ([]any, error) {
			p := plans[i]
			return []any{p.MetalLevel, decimalToNumeric(p.Rate), int32(p.RateArea)}, nil
		}))
}

// LoadZips replaces the contents of the zips table with zips.
func (s *PgStore) LoadZips(ctx context.Context, zips []rates.ZipRecord) (int64, error) {
	return s.replace(ctx, "zips", []string{colZipcode, colRateArea},
		pgx.CopyFromSlice(len(zips), func(i int) ([]any, error) {
			z := zips[i]
			return []any{z.Zipcode, int32(z.RateArea)}, nil
		}))
}

// replace truncates table and bulk-loads src via COPY in one transaction.
func (s *PgStore) replace(ctx context.Context, table string, cols []string, src pgx.CopyFromSource) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{table}.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", table, err)
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{table}, cols, src)
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s: %w", table, err)
	}
	return copied, nil
}

// Plans reads the whole plans table.
func (s *PgStore) Plans(ctx context.Context) ([]rates.PlanRecord, error) {
	rows, err := s.pool.Query(ctx, "SELECT metal_level, rate, rate_area FROM plans ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []rates.PlanRecord
	for rows.Next() {
		var (
			p    rates.PlanRecord
			rate pgtype.Numeric
		)
		if err := rows.Scan(&p.MetalLevel, &rate, &p.RateArea); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Rate, err = numericToDecimal(rate)
		if err != nil {
			return nil, fmt.Errorf("plan rate: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read plans: %w", err)
	}
	return plans, nil
}

// Zips reads the whole zips table.
func (s *PgStore) Zips(ctx context.Context) ([]rates.ZipRecord, error) {
	rows, err := s.pool.Query(ctx, "SELECT zipcode, rate_area FROM zips ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query zips: %w", err)
	}
	defer rows.Close()

	var zips []rates.ZipRecord
	for rows.Next() {
		var z rates.ZipRecord
		if err := rows.Scan(&z.Zipcode, &z.RateArea); err != nil {
			return nil, fmt.Errorf("scan zip: %w", err)
		}
		zips = append(zips, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read zips: %w", err)
	}
	return zips, nil
}

// pgtype helpers

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Decimal{}, errors.New("NULL numeric")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Decimal{}, errors.New("non-finite numeric")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
