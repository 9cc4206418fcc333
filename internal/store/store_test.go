package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func computed(t *testing.T, name string, soil nec.SoilType) *spectrum.Result {
	t.Helper()
	res, err := spectrum.Compute(spectrum.Input{
		Name:    name,
		Soil:    soil,
		Zone:    nec.ZoneIV,
		Region:  nec.Oriente,
		Factors: spectrum.StructuralFactors{R: 6, I: 1.3, PhiP: 0.9, PhiE: 1},
		Domain:  spectrum.Domain{Start: 0, End: 5, Samples: 501},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return res
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	res := computed(t, "Clinic", nec.SoilD)

	run, err := db.Save(ctx, res)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if run.ID == "" || run.Tc != res.Curve.Tc {
		t.Fatalf("unexpected run %+v", run)
	}

	got, err := db.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Clinic" || got.Soil != "D" || got.Zone != "IV" || got.Region != "Oriente" {
		t.Fatalf("unexpected stored run %+v", got)
	}
	if got.Fa != res.Site.Amp.Fa || got.Eta != res.Site.Eta || got.Samples != 501 {
		t.Fatalf("stored coefficients differ: %+v", got)
	}

	byPrefix, err := db.Get(ctx, run.ID[:8])
	if err != nil || byPrefix.ID != run.ID {
		t.Fatalf("prefix lookup failed: %v", err)
	}
}

func TestRecomputeFromStoredInput(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)
	res := computed(t, "Warehouse", nec.SoilE)

	run, err := db.Save(ctx, res)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := db.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	in, err := stored.Input()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	again, err := spectrum.Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Curve, res.Curve) {
		t.Fatal("recomputed curve differs from the saved run")
	}
}

func TestListCountDelete(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	var ids []string
	for _, soil := range []nec.SoilType{nec.SoilA, nec.SoilB, nec.SoilC} {
		run, err := db.Save(ctx, computed(t, "", soil))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := db.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	limited, err := db.List(ctx, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("expected 2 runs with limit, got %d (%v)", len(limited), err)
	}

	if err := db.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, err := db.Count(ctx); err != nil || n != 2 {
		t.Fatalf("expected 2 runs after delete, got %d (%v)", n, err)
	}
	if err := db.Delete(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := db.Get(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMatchesIDLiterally(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	run, err := db.Save(ctx, computed(t, "Depot", nec.SoilB))
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"%", "_", "_" + run.ID[1:8], run.ID[:4] + "%"} {
		if _, err := db.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
	}
	for _, id := range []string{"", "   "} {
		if _, err := db.Get(ctx, id); err == nil {
			t.Errorf("Get(%q): expected error for empty id", id)
		}
	}
	if got, err := db.Get(ctx, run.ID[:6]); err != nil || got.ID != run.ID {
		t.Fatalf("prefix lookup failed: %v", err)
	}
}
