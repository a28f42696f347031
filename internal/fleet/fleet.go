// Package fleet holds the static aircraft inventory. Aircraft are defined by
// configuration at startup and never created or destroyed at runtime.
package fleet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	pkgerrors "aerodns/pkg/errors"
)

// Aircraft is one tracked airframe. The resolver IP is dedicated to the
// aircraft and immutable for its lifetime; region lists in the remote store
// are kept in sync with where it currently flies.
type Aircraft struct {
	Tail       string `json:"tail"`
	ResolverIP string `json:"resolver_ip"`
	Callsign   string `json:"callsign,omitempty"`
}

// Fleet is an immutable set of aircraft with tail-number lookup.
type Fleet struct {
	aircraft []Aircraft
	byTail   map[string]Aircraft
}

// New builds a fleet from explicit aircraft entries, validating uniqueness of
// tail numbers and resolver IPs across the fleet.
func New(aircraft []Aircraft) (*Fleet, error) {
	byTail := make(map[string]Aircraft, len(aircraft))
	byIP := make(map[string]string, len(aircraft))
	for _, ac := range aircraft {
		tail := strings.ToUpper(strings.TrimSpace(ac.Tail))
		if tail == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "aircraft tail number is required")
		}
		if ac.ResolverIP == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("aircraft %s has no resolver IP", tail))
		}
		if _, dup := byTail[tail]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("duplicate tail number %s", tail))
		}
		if owner, dup := byIP[ac.ResolverIP]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("resolver IP %s shared by %s and %s", ac.ResolverIP, owner, tail))
		}
		ac.Tail = tail
		byTail[tail] = ac
		byIP[ac.ResolverIP] = tail
	}

	all := make([]Aircraft, 0, len(byTail))
	for _, ac := range byTail {
		all = append(all, ac)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Tail < all[j].Tail })

	return &Fleet{aircraft: all, byTail: byTail}, nil
}

// Load reads a fleet definition from a JSON file of Aircraft entries.
func Load(path string) (*Fleet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fleet file: %w", err)
	}
	var aircraft []Aircraft
	if err := json.Unmarshal(data, &aircraft); err != nil {
		return nil, fmt.Errorf("parse fleet file %s: %w", path, err)
	}
	return New(aircraft)
}

// Default returns the built-in development fleet.
func Default() *Fleet {
	f, err := New([]Aircraft{
		{Tail: "N101AD", ResolverIP: "45.90.28.101", Callsign: "ADX101"},
		{Tail: "N202AD", ResolverIP: "45.90.28.102", Callsign: "ADX202"},
		{Tail: "N303AD", ResolverIP: "45.90.28.103", Callsign: "ADX303"},
	})
	if err != nil {
		panic(err)
	}
	return f
}

// All returns every aircraft in stable tail-number order.
func (f *Fleet) All() []Aircraft {
	out := make([]Aircraft, len(f.aircraft))
	copy(out, f.aircraft)
	return out
}

// ByTail looks up one aircraft by its tail number.
func (f *Fleet) ByTail(tail string) (Aircraft, bool) {
	ac, ok := f.byTail[strings.ToUpper(strings.TrimSpace(tail))]
	return ac, ok
}

// Size reports how many aircraft the fleet tracks.
func (f *Fleet) Size() int {
	return len(f.aircraft)
}
