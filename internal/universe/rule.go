package universe

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/quantfabric/universe/internal/contracts"
)

// Adaptation errors
var (
	ErrNotAdaptable = errors.New("callable cannot be adapted to a selection rule")
	ErrNilRule      = errors.New("selection rule is nil")
)

// SelectionRule maps the current fundamental snapshot to the symbols that
// belong in the universe now. Invocation is synchronous; the engine treats
// rules as pure and does not recover from panics inside them.
type SelectionRule interface {
	Select(records []contracts.Fundamental) []contracts.Symbol
}

// RuleFunc adapts a plain function to SelectionRule.
type RuleFunc func(records []contracts.Fundamental) []contracts.Symbol

// Select implements SelectionRule.
func (f RuleFunc) Select(records []contracts.Fundamental) []contracts.Symbol {
	return f(records)
}

// SymbolIdentifier is the duck-typed shape foreign selector results may
// carry instead of strict Symbol values.
type SymbolIdentifier interface {
	SymbolID() string
}

// AdaptRule converts a dynamically-typed callable into a SelectionRule.
// Shape validation happens here, once; a callable that cannot be converted
// is rejected with ErrNotAdaptable so that universe construction fails
// hard instead of deferring the problem to evaluation time.
//
// Accepted shapes, in order of preference:
//
//	SelectionRule                                      (used as-is)
//	func([]contracts.Fundamental) []contracts.Symbol   (native shape)
//	func([]contracts.Fundamental) []string
//	func([]contracts.Fundamental) []any
//	any func type assignable to one of the above via reflection,
//	  including named function types and slices of SymbolIdentifier
//
// For non-native result shapes each returned element is coerced into a
// Symbol on every call. An element that cannot be coerced (only possible
// for []any results) panics at evaluation time, which is treated as a
// rule failure and propagates to the caller.
func AdaptRule(callable any) (SelectionRule, error) {
	if callable == nil {
		return nil, ErrNilRule
	}

	switch fn := callable.(type) {
	case SelectionRule:
		return fn, nil
	case func([]contracts.Fundamental) []contracts.Symbol:
		return RuleFunc(fn), nil
	case func([]contracts.Fundamental) []string:
		return RuleFunc(func(records []contracts.Fundamental) []contracts.Symbol {
			return symbolsFromStrings(fn(records))
		}), nil
	case func([]contracts.Fundamental) []any:
		return RuleFunc(func(records []contracts.Fundamental) []contracts.Symbol {
			return symbolsFromAny(fn(records))
		}), nil
	}

	return adaptReflected(reflect.ValueOf(callable))
}

// adaptReflected handles named function types and element shapes the
// static switch above cannot express.
func adaptReflected(v reflect.Value) (SelectionRule, error) {
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is not a function", ErrNotAdaptable, v.Kind())
	}

	t := v.Type()
	if t.NumIn() != 1 || t.In(0) != reflect.TypeOf([]contracts.Fundamental(nil)) {
		return nil, fmt.Errorf("%w: want a single []Fundamental parameter", ErrNotAdaptable)
	}
	if t.NumOut() != 1 || t.Out(0).Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: want a single slice result", ErrNotAdaptable)
	}

	elem := t.Out(0).Elem()
	convert, err := elementConverter(elem)
	if err != nil {
		return nil, err
	}

	return RuleFunc(func(records []contracts.Fundamental) []contracts.Symbol {
		out := v.Call([]reflect.Value{reflect.ValueOf(records)})[0]
		symbols := make([]contracts.Symbol, 0, out.Len())
		for i := 0; i < out.Len(); i++ {
			symbols = append(symbols, convert(out.Index(i)))
		}
		return symbols
	}), nil
}

// elementConverter returns the per-element coercion for a result slice
// element type, or ErrNotAdaptable if the shape is not symbol-convertible.
func elementConverter(elem reflect.Type) (func(reflect.Value) contracts.Symbol, error) {
	symbolType := reflect.TypeOf(contracts.Symbol{})
	identifierType := reflect.TypeOf((*SymbolIdentifier)(nil)).Elem()

	switch {
	case elem == symbolType:
		return func(v reflect.Value) contracts.Symbol {
			return v.Interface().(contracts.Symbol)
		}, nil
	case elem.Kind() == reflect.String:
		return func(v reflect.Value) contracts.Symbol {
			return contracts.NewSymbol(v.String(), contracts.MarketUS)
		}, nil
	case elem.Implements(identifierType):
		return func(v reflect.Value) contracts.Symbol {
			return coerceSymbol(v.Interface())
		}, nil
	case elem.Kind() == reflect.Interface && elem.NumMethod() == 0:
		// []any: element shapes are only knowable per call.
		return func(v reflect.Value) contracts.Symbol {
			return coerceSymbol(v.Interface())
		}, nil
	default:
		return nil, fmt.Errorf("%w: result element type %s is not symbol-convertible", ErrNotAdaptable, elem)
	}
}

func symbolsFromStrings(ids []string) []contracts.Symbol {
	symbols := make([]contracts.Symbol, 0, len(ids))
	for _, id := range ids {
		symbols = append(symbols, contracts.NewSymbol(id, contracts.MarketUS))
	}
	return symbols
}

func symbolsFromAny(values []any) []contracts.Symbol {
	symbols := make([]contracts.Symbol, 0, len(values))
	for _, v := range values {
		symbols = append(symbols, coerceSymbol(v))
	}
	return symbols
}

// coerceSymbol normalizes one foreign selector result element. Panics on
// shapes that cannot denote a symbol; by this point the rule is already
// executing, so the failure surfaces as a rule failure.
func coerceSymbol(v any) contracts.Symbol {
	switch s := v.(type) {
	case contracts.Symbol:
		return s
	case string:
		return contracts.NewSymbol(s, contracts.MarketUS)
	case SymbolIdentifier:
		return contracts.NewSymbol(s.SymbolID(), contracts.MarketUS)
	default:
		panic(fmt.Sprintf("universe: selector returned %T, which is not symbol-convertible", v))
	}
}
