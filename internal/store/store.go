// Package store keeps a local SQLite history of computed spectra.
// Only inputs and derived scalars are stored; curves are recomputed.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// ErrNotFound is returned when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one stored spectrum computation.
type Run struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`

	Soil   string `db:"soil"`
	Zone   string `db:"zone"`
	Region string `db:"region"`

	R    float64 `db:"r"`
	I    float64 `db:"i"`
	PhiP float64 `db:"phi_p"`
	PhiE float64 `db:"phi_e"`

	Start   float64 `db:"t_start"`
	End     float64 `db:"t_end"`
	Samples int     `db:"samples"`

	Fa  float64 `db:"fa"`
	Fd  float64 `db:"fd"`
	Fs  float64 `db:"fs"`
	Exp float64 `db:"exp"`
	Eta float64 `db:"eta"`
	Z   float64 `db:"z"`
	T0  float64 `db:"t0"`
	Tc  float64 `db:"tc"`
	TL  float64 `db:"tl"`

	PeakSa float64 `db:"peak_sa"`
}

// Input rebuilds the request that produced the run.
func (r Run) Input() (spectrum.Input, error) {
	soil, err := nec.ParseSoilType(r.Soil)
	if err != nil {
		return spectrum.Input{}, err
	}
	zone, err := nec.ParseZone(r.Zone)
	if err != nil {
		return spectrum.Input{}, err
	}
	region, err := nec.ParseRegion(r.Region)
	if err != nil {
		return spectrum.Input{}, err
	}
	return spectrum.Input{
		Name:    r.Name,
		Soil:    soil,
		Zone:    zone,
		Region:  region,
		Factors: spectrum.StructuralFactors{R: r.R, I: r.I, PhiP: r.PhiP, PhiE: r.PhiE},
		Domain:  spectrum.Domain{Start: r.Start, End: r.End, Samples: r.Samples},
	}, nil
}

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		soil TEXT NOT NULL,
		zone TEXT NOT NULL,
		region TEXT NOT NULL,
		r REAL NOT NULL,
		i REAL NOT NULL,
		phi_p REAL NOT NULL,
		phi_e REAL NOT NULL,
		t_start REAL NOT NULL,
		t_end REAL NOT NULL,
		samples INTEGER NOT NULL,
		fa REAL NOT NULL,
		fd REAL NOT NULL,
		fs REAL NOT NULL,
		exp REAL NOT NULL,
		eta REAL NOT NULL,
		z REAL NOT NULL,
		t0 REAL NOT NULL,
		tc REAL NOT NULL,
		tl REAL NOT NULL,
		peak_sa REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save records a computed spectrum and returns the stored run.
func (db *DB) Save(ctx context.Context, res *spectrum.Result) (Run, error) {
	_, peak := res.Curve.Peak()
	run := Run{
		ID:        uuid.NewString(),
		Name:      res.Name,
		CreatedAt: time.Now().UTC(),
		Soil:      res.Site.Soil.String(),
		Zone:      res.Site.Zone.String(),
		Region:    res.Site.Region.String(),
		R:         res.Factors.R,
		I:         res.Factors.I,
		PhiP:      res.Factors.PhiP,
		PhiE:      res.Factors.PhiE,
		Start:     res.Domain.Start,
		End:       res.Domain.End,
		Samples:   res.Domain.Samples,
		Fa:        res.Site.Amp.Fa,
		Fd:        res.Site.Amp.Fd,
		Fs:        res.Site.Amp.Fs,
		Exp:       res.Site.Amp.R,
		Eta:       res.Site.Eta,
		Z:         res.Site.Z,
		T0:        res.Curve.T0,
		Tc:        res.Curve.Tc,
		TL:        res.Curve.TL,
		PeakSa:    peak,
	}

	_, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO runs (id, name, created_at, soil, zone, region, r, i, phi_p, phi_e,
			t_start, t_end, samples, fa, fd, fs, exp, eta, z, t0, tc, tl, peak_sa)
		VALUES (:id, :name, :created_at, :soil, :zone, :region, :r, :i, :phi_p, :phi_e,
			:t_start, :t_end, :samples, :fa, :fd, :fs, :exp, :eta, :z, :t0, :tc, :tl, :peak_sa)`, run)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first. A limit <= 0 returns all runs.
func (db *DB) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs, `SELECT * FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// likeEscaper quotes LIKE wildcards so IDs match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Get returns the run with the given ID or a unique ID prefix.
func (db *DB) Get(ctx context.Context, id string) (Run, error) {
	if strings.TrimSpace(id) == "" {
		return Run{}, errors.New("empty run id")
	}
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs, `SELECT * FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`, likeEscaper.Replace(id)+"%")
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	switch len(runs) {
	case 0:
		return Run{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	case 1:
		return runs[0], nil
	}
	return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
}

// Delete removes a run by full ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored runs.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := db.conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM runs`)
	return n, err
}
