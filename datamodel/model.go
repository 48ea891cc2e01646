// Package datamodel holds the live values that data bindings read from and
// evaluates data binding expressions against them.
//
// Values are published by external sources (MQTT messages, system probes) and
// read once per frame by every active data binding, so access is guarded by a
// single RWMutex and compiled expressions are cached.
package datamodel

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// maxExpressionLength limits the size of binding expressions.
const maxExpressionLength = 1000

// maxASTNodes limits the complexity of binding expressions.
const maxASTNodes = 500

// Reserved variables exposed to every expression.
const (
	VarPosition = "position"
	VarLength   = "length"
)

// Model is a thread-safe set of named values.
type Model struct {
	values   map[string]interface{}
	valuesMu sync.RWMutex

	programCache map[cacheKey]*vm.Program
	cacheMu      sync.RWMutex
}

type cacheKey struct {
	expression string
	kind       reflect.Kind
}

// New creates an empty data model.
func New() *Model {
	return &Model{
		values:       make(map[string]interface{}),
		programCache: make(map[cacheKey]*vm.Program),
	}
}

// Set stores a single value.
func (m *Model) Set(name string, value interface{}) {
	m.valuesMu.Lock()
	defer m.valuesMu.Unlock()
	m.values[name] = value
}

// SetAll merges values into the model.
func (m *Model) SetAll(values map[string]interface{}) {
	m.valuesMu.Lock()
	defer m.valuesMu.Unlock()
	maps.Copy(m.values, values)
}

// Get returns a value by name.
func (m *Model) Get(name string) (interface{}, bool) {
	m.valuesMu.RLock()
	defer m.valuesMu.RUnlock()
	v, ok := m.values[name]
	return v, ok
}

// Delete removes a value.
func (m *Model) Delete(name string) {
	m.valuesMu.Lock()
	defer m.valuesMu.Unlock()
	delete(m.values, name)
}

// Names returns the names of all values in sorted order.
func (m *Model) Names() []string {
	m.valuesMu.RLock()
	defer m.valuesMu.RUnlock()

	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the current values.
func (m *Model) Snapshot() map[string]interface{} {
	m.valuesMu.RLock()
	defer m.valuesMu.RUnlock()
	return maps.Clone(m.values)
}

// Program is a compiled expression bound to the model it reads from.
type Program struct {
	model      *Model
	program    *vm.Program
	expression string
}

// Compile compiles an expression whose result is converted to kind where
// expr supports it (ints and floats are cast, bools are type checked).
// Compiled programs are shared between bindings using the same expression.
func (m *Model) Compile(expression string, kind reflect.Kind) (*Program, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression is empty")
	}
	if len(expression) > maxExpressionLength {
		return nil, fmt.Errorf("expression exceeds maximum length of %d characters", maxExpressionLength)
	}

	program, err := m.getOrCompile(cacheKey{expression: expression, kind: kind})
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", expression, err)
	}
	return &Program{model: m, program: program, expression: expression}, nil
}

func (m *Model) getOrCompile(key cacheKey) (*vm.Program, error) {
	m.cacheMu.RLock()
	program, found := m.programCache[key]
	m.cacheMu.RUnlock()
	if found {
		return program, nil
	}

	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	// Another goroutine may have compiled it while we waited for the lock
	if program, found := m.programCache[key]; found {
		return program, nil
	}

	program, err := expr.Compile(key.expression, compileOptions(key.kind)...)
	if err != nil {
		return nil, err
	}
	m.programCache[key] = program
	return program, nil
}

func compileOptions(kind reflect.Kind) []expr.Option {
	options := []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.MaxNodes(maxASTNodes),
		expr.Function("clamp", func(params ...interface{}) (interface{}, error) {
			v, err := floats(params, 3)
			if err != nil {
				return nil, err
			}
			return math.Min(math.Max(v[0], v[1]), v[2]), nil
		}),
		expr.Function("lerp", func(params ...interface{}) (interface{}, error) {
			v, err := floats(params, 3)
			if err != nil {
				return nil, err
			}
			return v[0] + (v[1]-v[0])*v[2], nil
		}),
	}

	switch kind {
	case reflect.Float32, reflect.Float64:
		options = append(options, expr.AsFloat64())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		options = append(options, expr.AsInt())
	case reflect.Bool:
		options = append(options, expr.AsBool())
	}
	return options
}

// floats converts exactly n numeric function arguments to float64.
func floats(params []interface{}, n int) ([]float64, error) {
	if len(params) != n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(params))
	}
	out := make([]float64, n)
	for i, p := range params {
		v := reflect.ValueOf(p)
		switch {
		case v.CanFloat():
			out[i] = v.Float()
		case v.CanInt():
			out[i] = float64(v.Int())
		case v.CanUint():
			out[i] = float64(v.Uint())
		default:
			return nil, fmt.Errorf("argument %d is not a number: %T", i+1, p)
		}
	}
	return out, nil
}

// String returns the source expression.
func (p *Program) String() string {
	return p.expression
}

// Evaluate runs the program against a snapshot of the model. The timeline
// position and length are exposed in seconds.
func (p *Program) Evaluate(position, length time.Duration) (interface{}, error) {
	env := p.model.Snapshot()
	env[VarPosition] = position.Seconds()
	env[VarLength] = length.Seconds()

	out, err := expr.Run(p.program, env)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %q: %w", p.expression, err)
	}
	return out, nil
}
