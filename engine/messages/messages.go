// Package messages holds the fixed flavor-response pools used when a
// generic verb has no object-specific handler. The pools are data, not
// code: embedded YAML parsed once at build.
package messages

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed pools.yaml
var poolsYAML []byte

// Pools is the parsed pool table: pool name → responses.
type Pools map[string][]string

// Load parses the embedded pool table.
func Load() (Pools, error) {
	var p Pools
	if err := yaml.Unmarshal(poolsYAML, &p); err != nil {
		return nil, fmt.Errorf("parsing message pools: %w", err)
	}
	for name, entries := range p {
		if len(entries) == 0 {
			return nil, fmt.Errorf("message pool %q is empty", name)
		}
	}
	return p, nil
}

// Pick returns the nth entry of a pool, wrapping. Callers supply n
// from the seeded RNG so replays are deterministic.
func (p Pools) Pick(pool string, n int) string {
	entries := p[pool]
	if len(entries) == 0 {
		return "Nothing happens."
	}
	if n < 0 {
		n = -n
	}
	return entries[n%len(entries)]
}
