// Package config loads normalizer settings from YAML files.
//
// Example:
//
//	lower: [-2147483647, -2139095040]
//	middle: {start: -8388608, end: 4194303}
//	upper: [2143289343, 2147483647]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/avdva/normz"
	"gopkg.in/yaml.v3"
)

var (
	// ErrWide is returned when a partition is requested for the wide layout.
	ErrWide = errors.New("wide layout has no partition")

	errWideRanges = errors.New("wide layout does not accept custom ranges")
)

// Bounds are the start and the end of a range.
// In YAML, bounds are either a sequence [start, end] or a mapping {start: s, end: e}.
type Bounds struct {
	Start int32 `yaml:"start"`
	End   int32 `yaml:"end"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bounds) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []int32
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: want 2 bounds, got %d", node.Line, len(pair))
		}
		b.Start, b.End = pair[0], pair[1]
	case yaml.MappingNode:
		return b.decodeMapping(node)
	default:
		return fmt.Errorf("line %d: bounds must be a sequence or a mapping", node.Line)
	}
	return nil
}

// decodeMapping requires exactly the start and end keys.
func (b *Bounds) decodeMapping(node *yaml.Node) error {
	var start, end *int32
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var target **int32
		switch key.Value {
		case "start":
			target = &start
		case "end":
			target = &end
		default:
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
		if *target != nil {
			return fmt.Errorf("line %d: duplicate field %q", key.Line, key.Value)
		}
		var v int32
		if err := value.Decode(&v); err != nil {
			return err
		}
		*target = &v
	}
	switch {
	case start == nil:
		return fmt.Errorf("line %d: missing start", node.Line)
	case end == nil:
		return fmt.Errorf("line %d: missing end", node.Line)
	}
	b.Start, b.End = *start, *end
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b Bounds) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int32{b.Start, b.End} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.FormatInt(int64(v), 10),
		})
	}
	return node, nil
}

// ParseBounds parses bounds in the form "start:end".
func ParseBounds(s string) (Bounds, error) {
	start, end, found := strings.Cut(s, ":")
	if !found {
		return Bounds{}, fmt.Errorf("bad bounds %q: want start:end", s)
	}
	st, err := strconv.ParseInt(strings.TrimSpace(start), 10, 32)
	if err != nil {
		return Bounds{}, fmt.Errorf("bad start in %q: %w", s, err)
	}
	e, err := strconv.ParseInt(strings.TrimSpace(end), 10, 32)
	if err != nil {
		return Bounds{}, fmt.Errorf("bad end in %q: %w", s, err)
	}
	return Bounds{Start: int32(st), End: int32(e)}, nil
}

// Range returns bounds as a range.
func (b Bounds) Range() (normz.Range, error) {
	return normz.NewRange(b.Start, b.End)
}

// Config holds normalizer settings. Unset ranges are replaced with the default ones.
type Config struct {
	Lower  *Bounds `yaml:"lower,omitempty"`
	Middle *Bounds `yaml:"middle,omitempty"`
	Upper  *Bounds `yaml:"upper,omitempty"`
	// Wide selects the fixed wide layout instead of the ranges.
	Wide bool `yaml:"wide,omitempty"`
}

// Default returns a config for the default partition.
func Default() Config {
	return Config{}
}

// Parse parses YAML data. Empty data produces the default config.
// Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load %q: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks, that every set range has start < end,
// and that the resulting partition can be built.
func (c Config) Validate() error {
	if c.Wide {
		if c.hasRanges() {
			return errWideRanges
		}
		return nil
	}
	_, err := c.Partition()
	return err
}

func (c Config) hasRanges() bool {
	return c.Lower != nil || c.Middle != nil || c.Upper != nil
}

// Builder returns a partition builder with the ranges from the config.
func (c Config) Builder() (normz.Builder, error) {
	b := normz.NewBuilder()
	for _, it := range []struct {
		name   string
		bounds *Bounds
		with   func(normz.Builder, normz.Range) normz.Builder
	}{
		{"lower", c.Lower, normz.Builder.WithLower},
		{"middle", c.Middle, normz.Builder.WithMiddle},
		{"upper", c.Upper, normz.Builder.WithUpper},
	} {
		if it.bounds == nil {
			continue
		}
		r, err := it.bounds.Range()
		if err != nil {
			return normz.Builder{}, fmt.Errorf("%s: %w", it.name, err)
		}
		b = it.with(b, r)
	}
	return b, nil
}

// Partition builds a partition from the config.
func (c Config) Partition() (normz.Partition, error) {
	if c.Wide {
		return normz.Partition{}, ErrWide
	}
	b, err := c.Builder()
	if err != nil {
		return normz.Partition{}, err
	}
	return b.Build()
}
