// Package schema holds the per-component-type structural schemas and the
// node-level checks driven by them. The registry is built once at run start
// from JSON schema documents embedded in the binary and is immutable
// afterwards, so concurrent file validation needs no locking.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ignition-tooling/ignition-lint/pkg/logger"
)

var log = logger.New("schema:registry")

//go:embed schemas/*.json
var schemaFS embed.FS

// Mode selects how unknown component type identifiers are treated.
// Structural checks are mode-independent.
type Mode int

const (
	// ModeStrict accepts only types with an embedded schema.
	ModeStrict Mode = iota
	// ModeCurated accepts schema types plus the curated known-type list.
	ModeCurated
	// ModePermissive accepts any dotted type identifier.
	ModePermissive
)

var modeNames = map[Mode]string{
	ModeStrict:     "strict",
	ModeCurated:    "curated",
	ModePermissive: "permissive",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a mode name to its Mode value.
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return mode, nil
		}
	}
	return ModeStrict, fmt.Errorf("unknown schema mode %q (options: strict, curated, permissive)", name)
}

// curatedTypes are component types without embedded structural schemas that
// are still accepted under curated mode. The list tracks the stock
// Perspective palette; it is necessarily incomplete.
var curatedTypes = map[string]bool{
	"ia.container.tab":              true,
	"ia.container.breakpoint":       true,
	"ia.container.column":           true,
	"ia.container.split":            true,
	"ia.display.markdown":           true,
	"ia.display.gauge":              true,
	"ia.display.led-display":        true,
	"ia.display.linear-scale":       true,
	"ia.display.moving-analog-indicator": true,
	"ia.display.progress":           true,
	"ia.display.cylindrical-tank":   true,
	"ia.display.alarm-status-table": true,
	"ia.display.alarm-journal-table": true,
	"ia.display.power-chart":        true,
	"ia.display.pdf-viewer":         true,
	"ia.display.iframe":             true,
	"ia.display.view-canvas":        true,
	"ia.chart.timeseries":           true,
	"ia.chart.pie":                  true,
	"ia.chart.simple-gauge":         true,
	"ia.input.dropdown":             true,
	"ia.input.checkbox":             true,
	"ia.input.toggle-switch":        true,
	"ia.input.radio-group":          true,
	"ia.input.numeric-entry-field":  true,
	"ia.input.slider":               true,
	"ia.input.date-time-input":      true,
	"ia.input.date-time-picker":     true,
	"ia.input.text-area":            true,
	"ia.input.password-field":       true,
	"ia.input.file-upload":          true,
	"ia.navigation.link":            true,
	"ia.navigation.menu-tree":       true,
	"ia.navigation.horizontal-menu": true,
	"ia.shapes.svg":                 true,
	"ia.shapes.rectangle":           true,
	"ia.shapes.ellipse":             true,
	"ia.shapes.line":                true,
	"ia.symbols.pump":               true,
	"ia.symbols.valve":              true,
	"ia.symbols.motor":              true,
	"ia.symbols.vessel":             true,
	"ia.symbols.sensor":             true,
}

// Registry resolves component type identifiers to compiled structural
// schemas. Construct once with NewRegistry and share read-only.
type Registry struct {
	mode     Mode
	compiled map[string]*jsonschema.Schema
}

// NewRegistry compiles every embedded schema document for the given mode.
// A compilation failure is a startup-time defect, not a lint finding.
func NewRegistry(mode Mode) (*Registry, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding embedded schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, doc); err != nil {
			return nil, fmt.Errorf("registering embedded schema %s: %w", name, err)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	compiled := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		sch, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compiling embedded schema %s: %w", name, err)
		}
		typeID := strings.TrimSuffix(name, ".json")
		compiled[typeID] = sch
	}

	log.Printf("Compiled %d component schemas (mode=%s)", len(compiled), mode)
	return &Registry{mode: mode, compiled: compiled}, nil
}

// Mode returns the strictness mode the registry was built with.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Resolve returns the compiled schema for a type identifier, or false when
// no embedded schema covers it.
func (r *Registry) Resolve(typeID string) (*jsonschema.Schema, bool) {
	sch, ok := r.compiled[typeID]
	return sch, ok
}

// Accepts reports whether the type identifier is acceptable under the
// registry's mode. Unknown-but-accepted types skip structural validation
// and receive only the generic per-node checks.
func (r *Registry) Accepts(typeID string) bool {
	if _, ok := r.compiled[typeID]; ok {
		return true
	}
	switch r.mode {
	case ModeStrict:
		return false
	case ModeCurated:
		return curatedTypes[typeID]
	default:
		return true
	}
}

// KnownTypes returns the sorted type identifiers with embedded schemas.
func (r *Registry) KnownTypes() []string {
	types := make([]string, 0, len(r.compiled))
	for typeID := range r.compiled {
		types = append(types, typeID)
	}
	sort.Strings(types)
	return types
}
