package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"aerodns/internal/region"
)

// PostgresStore persists aircraft state in a single upserted table. Use when
// state must survive Redis eviction policies or feed reporting queries.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the backing table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS aircraft_state (
			tail       TEXT PRIMARY KEY,
			region     TEXT NOT NULL,
			over_water BOOLEAN NOT NULL DEFAULT FALSE,
			lat        DOUBLE PRECISION NOT NULL DEFAULT 0,
			lon        DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate aircraft_state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, tail string) (AircraftState, error) {
	var st AircraftState
	var regionCode string
	err := s.pool.QueryRow(ctx, `
		SELECT tail, region, over_water, lat, lon, updated_at
		FROM aircraft_state WHERE tail = $1`, tail).
		Scan(&st.Tail, &regionCode, &st.OverWater, &st.Lat, &st.Lon, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AircraftState{}, ErrNotFound
	}
	if err != nil {
		return AircraftState{}, fmt.Errorf("get aircraft state: %w", err)
	}
	st.Region = region.Code(regionCode)
	return st, nil
}

func (s *PostgresStore) Put(ctx context.Context, st AircraftState) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO aircraft_state (tail, region, over_water, lat, lon, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tail) DO UPDATE SET
			region = EXCLUDED.region,
			over_water = EXCLUDED.over_water,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			updated_at = EXCLUDED.updated_at`,
		st.Tail, string(st.Region), st.OverWater, st.Lat, st.Lon, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put aircraft state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, tail string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM aircraft_state WHERE tail = $1`, tail)
	if err != nil {
		return fmt.Errorf("delete aircraft state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM aircraft_state`); err != nil {
		return fmt.Errorf("delete all aircraft state: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]AircraftState, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tail, region, over_water, lat, lon, updated_at
		FROM aircraft_state ORDER BY tail`)
	if err != nil {
		return nil, fmt.Errorf("list aircraft state: %w", err)
	}
	defer rows.Close()

	var out []AircraftState
	for rows.Next() {
		var st AircraftState
		var regionCode string
		if err := rows.Scan(&st.Tail, &regionCode, &st.OverWater, &st.Lat, &st.Lon, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan aircraft state: %w", err)
		}
		st.Region = region.Code(regionCode)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list aircraft state: %w", err)
	}
	return out, nil
}
