// Package selection provides ready-made selection rules for fundamental
// universes. Each constructor returns a native rule; callers compose them
// or supply their own.
package selection

import (
	"sort"

	"github.com/quantfabric/universe/internal/contracts"
	"github.com/quantfabric/universe/internal/universe"
)

// All selects every symbol carrying data, in snapshot order.
func All() universe.RuleFunc {
	return func(records []contracts.Fundamental) []contracts.Symbol {
		selected := make([]contracts.Symbol, 0, len(records))
		for _, rec := range records {
			if !rec.HasData {
				continue
			}
			selected = append(selected, rec.Symbol)
		}
		return selected
	}
}

// FieldAbove selects symbols whose named attribute is strictly greater
// than min. Sentinel records and unknown fields never pass.
func FieldAbove(field string, min float64) universe.RuleFunc {
	return func(records []contracts.Fundamental) []contracts.Symbol {
		selected := make([]contracts.Symbol, 0, len(records))
		for _, rec := range records {
			if !rec.HasData {
				continue
			}
			value, ok := rec.Field(field)
			if !ok || value <= min {
				continue
			}
			selected = append(selected, rec.Symbol)
		}
		return selected
	}
}

// FieldBelow selects symbols whose named attribute is strictly less than
// max. Sentinel records and unknown fields never pass.
func FieldBelow(field string, max float64) universe.RuleFunc {
	return func(records []contracts.Fundamental) []contracts.Symbol {
		selected := make([]contracts.Symbol, 0, len(records))
		for _, rec := range records {
			if !rec.HasData {
				continue
			}
			value, ok := rec.Field(field)
			if !ok || value >= max {
				continue
			}
			selected = append(selected, rec.Symbol)
		}
		return selected
	}
}

// TopNBy selects the n symbols with the highest value of the named
// attribute, emitted in descending order. Ties keep snapshot order.
func TopNBy(field string, n int) universe.RuleFunc {
	return func(records []contracts.Fundamental) []contracts.Symbol {
		type scored struct {
			symbol contracts.Symbol
			value  float64
		}

		candidates := make([]scored, 0, len(records))
		for _, rec := range records {
			if !rec.HasData {
				continue
			}
			value, ok := rec.Field(field)
			if !ok {
				continue
			}
			candidates = append(candidates, scored{symbol: rec.Symbol, value: value})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].value > candidates[j].value
		})

		if n > len(candidates) {
			n = len(candidates)
		}
		if n < 0 {
			n = 0
		}

		selected := make([]contracts.Symbol, 0, n)
		for _, c := range candidates[:n] {
			selected = append(selected, c.symbol)
		}
		return selected
	}
}

// Intersect composes rules into their intersection. The first rule's
// emission order is preserved; later rules only veto.
func Intersect(rules ...universe.SelectionRule) universe.RuleFunc {
	return func(records []contracts.Fundamental) []contracts.Symbol {
		if len(rules) == 0 {
			return nil
		}

		selected := rules[0].Select(records)
		for _, rule := range rules[1:] {
			keep := make(map[contracts.Symbol]bool)
			for _, s := range rule.Select(records) {
				keep[s] = true
			}

			next := selected[:0]
			for _, s := range selected {
				if keep[s] {
					next = append(next, s)
				}
			}
			selected = next
		}
		return selected
	}
}
