package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestStaticProvider_DefaultsToBuiltIn(t *testing.T) {
	t.Parallel()

	provider := NewStaticProvider()
	villas, err := provider.Villas(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(villas) == 0 {
		t.Fatal("expected built-in catalog to be non-empty")
	}
	if len(villas[0].Suites) != 3 {
		t.Fatalf("expected 3 suites for flagship villa, got %d", len(villas[0].Suites))
	}
}

func TestStaticProvider_Lookups(t *testing.T) {
	t.Parallel()

	provider := NewStaticProvider()

	villa, err := provider.Villa(context.Background(), "villays-flagship")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if villa.Name != "Villays Estate Amalfi" {
		t.Errorf("unexpected villa name %q", villa.Name)
	}

	suite, err := provider.Suite(context.Background(), "villays-flagship", "suite-pool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suite.NightlyRate != 1980 {
		t.Errorf("expected nightly rate 1980, got %d", suite.NightlyRate)
	}

	if _, err := provider.Villa(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown villa, got %v", err)
	}
	if _, err := provider.Suite(context.Background(), "villays-flagship", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown suite, got %v", err)
	}
}

func TestStaticProvider_ClonesOnRead(t *testing.T) {
	t.Parallel()

	provider := NewStaticProvider(Villa{
		ID:     "v1",
		Name:   "Test Villa",
		Suites: []Suite{{ID: "s1", Name: "Suite One", Inclusions: []string{"breakfast"}}},
	})

	first, err := provider.Villa(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Suites[0].Name = "mutated"
	first.Suites[0].Inclusions[0] = "mutated"

	second, err := provider.Villa(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Suites[0].Name != "Suite One" {
		t.Errorf("catalog mutated through returned copy: %q", second.Suites[0].Name)
	}
	if second.Suites[0].Inclusions[0] != "breakfast" {
		t.Errorf("inclusions mutated through returned copy: %q", second.Suites[0].Inclusions[0])
	}
}
