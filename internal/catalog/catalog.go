package catalog

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound is returned when the requested villa or suite does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Suite is a bookable unit within a villa, carrying its own nightly rate.
type Suite struct {
	ID          string
	Name        string
	Size        string
	View        string
	Location    string
	Description string
	Image       string
	NightlyRate int64
	Inclusions  []string
}

// Villa is a catalog entry for a property and its suites.
type Villa struct {
	ID          string
	Name        string
	Location    string
	Description string
	Image       string
	NightlyRate int64
	Rating      float64
	Reviews     int
	LivingArea  int
	Bedrooms    int
	Tags        []string
	Amenities   []string
	Suites      []Suite
}

// Provider resolves read-only reference data by identifier.
type Provider interface {
	Villas(ctx context.Context) ([]Villa, error)
	Villa(ctx context.Context, id string) (Villa, error)
	Suite(ctx context.Context, villaID, suiteID string) (Suite, error)
}

// StaticProvider serves a fixed in-memory catalog.
type StaticProvider struct {
	villas map[string]Villa
	order  []string
}

// NewStaticProvider constructs a provider over the supplied villas. When no
// villas are given, the built-in estate catalog is used.
func NewStaticProvider(villas ...Villa) *StaticProvider {
	if len(villas) == 0 {
		villas = BuiltIn()
	}
	p := &StaticProvider{villas: make(map[string]Villa, len(villas))}
	for _, villa := range villas {
		if _, ok := p.villas[villa.ID]; ok {
			continue
		}
		p.villas[villa.ID] = cloneVilla(villa)
		p.order = append(p.order, villa.ID)
	}
	sort.Strings(p.order)
	return p
}

// Villas returns every catalog entry ordered by ID.
func (p *StaticProvider) Villas(ctx context.Context) ([]Villa, error) {
	if p == nil {
		return nil, nil
	}
	villas := make([]Villa, 0, len(p.order))
	for _, id := range p.order {
		villas = append(villas, cloneVilla(p.villas[id]))
	}
	return villas, nil
}

// Villa retrieves a single villa by ID.
func (p *StaticProvider) Villa(ctx context.Context, id string) (Villa, error) {
	if p == nil {
		return Villa{}, ErrNotFound
	}
	villa, ok := p.villas[id]
	if !ok {
		return Villa{}, ErrNotFound
	}
	return cloneVilla(villa), nil
}

// Suite retrieves a suite within a villa.
func (p *StaticProvider) Suite(ctx context.Context, villaID, suiteID string) (Suite, error) {
	villa, err := p.Villa(ctx, villaID)
	if err != nil {
		return Suite{}, err
	}
	for _, suite := range villa.Suites {
		if suite.ID == suiteID {
			return suite, nil
		}
	}
	return Suite{}, ErrNotFound
}

func cloneVilla(villa Villa) Villa {
	out := villa
	out.Tags = append([]string(nil), villa.Tags...)
	out.Amenities = append([]string(nil), villa.Amenities...)
	out.Suites = make([]Suite, len(villa.Suites))
	for i, suite := range villa.Suites {
		out.Suites[i] = cloneSuite(suite)
	}
	return out
}

func cloneSuite(suite Suite) Suite {
	out := suite
	out.Inclusions = append([]string(nil), suite.Inclusions...)
	return out
}
