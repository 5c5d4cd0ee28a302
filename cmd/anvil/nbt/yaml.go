// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtjson"
)

// yamlFromValue builds a YAML node tree mirroring v. The conversion
// goes through [yaml.Node] rather than plain maps so compound entry
// order survives into the output. Scalar kinds widen the way the JSON
// bridge widens them: all integer kinds print as plain integers, both
// float kinds as floats with a preserved decimal point. Unlike JSON,
// non-finite floats have YAML forms (.nan, .inf, -.inf) and are
// representable.
func yamlFromValue(v nbt.Value) (*yaml.Node, error) {
	switch value := v.(type) {
	case nbt.Byte:
		return yamlInt(int64(value)), nil
	case nbt.Short:
		return yamlInt(int64(value)), nil
	case nbt.Int:
		return yamlInt(int64(value)), nil
	case nbt.Long:
		return yamlInt(int64(value)), nil
	case nbt.Float:
		return yamlFloat(float64(value), 32), nil
	case nbt.Double:
		return yamlFloat(float64(value), 64), nil
	case nbt.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(value)}, nil

	case nbt.ByteArray:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range value {
			sequence.Content = append(sequence.Content, yamlInt(int64(element)))
		}
		return sequence, nil
	case nbt.IntArray:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range value {
			sequence.Content = append(sequence.Content, yamlInt(int64(element)))
		}
		return sequence, nil
	case nbt.LongArray:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, element := range value {
			sequence.Content = append(sequence.Content, yamlInt(element))
		}
		return sequence, nil

	case nbt.List:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < value.Len(); i++ {
			child, err := yamlFromValue(value.Index(i))
			if err != nil {
				return nil, err
			}
			sequence.Content = append(sequence.Content, child)
		}
		return sequence, nil

	case nbt.Compound:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var seen map[string]bool
		if len(value) > 1 {
			seen = make(map[string]bool, len(value))
		}
		for _, entry := range value {
			if seen != nil {
				if seen[entry.Key] {
					return nil, &nbt.DuplicateKeyError{Key: entry.Key}
				}
				seen[entry.Key] = true
			}
			if entry.Value == nil {
				return nil, fmt.Errorf("compound entry %q has nil value", entry.Key)
			}
			child, err := yamlFromValue(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", entry.Key, err)
			}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
				child)
		}
		return mapping, nil

	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func yamlInt(value int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(value, 10)}
}

// yamlFloat renders a float scalar so YAML resolves it back to a
// float: non-finite values use the YAML core forms, and integral
// values keep a trailing ".0".
func yamlFloat(value float64, bits int) *yaml.Node {
	var formatted string
	switch {
	case math.IsNaN(value):
		formatted = ".nan"
	case math.IsInf(value, 1):
		formatted = ".inf"
	case math.IsInf(value, -1):
		formatted = "-.inf"
	default:
		formatted = strconv.FormatFloat(value, 'g', -1, bits)
		if !strings.ContainsAny(formatted, ".eE") {
			formatted += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatted}
}

// valueFromYAML converts a parsed YAML node tree into a tagged tree.
// Typing follows the JSON bridge's inference: integers become ints or
// longs by width, floats become doubles, booleans become bytes, and
// sequences take the narrowest kind that holds every element. Two YAML
// extras are honored: !!binary scalars become byte arrays, and
// anchors/aliases are expanded in place.
func valueFromYAML(node *yaml.Node) (nbt.Value, error) {
	return yamlValue(node, 0)
}

func yamlValue(node *yaml.Node, depth int) (nbt.Value, error) {
	// Aliases can chain back into their own anchor; the depth cap
	// turns that cycle into an error instead of a hang.
	if depth > nbt.DefaultMaxDepth {
		return nil, fmt.Errorf("yaml line %d: nesting exceeds %d levels", node.Line, nbt.DefaultMaxDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty YAML document")
		}
		return yamlValue(node.Content[0], depth)

	case yaml.AliasNode:
		return yamlValue(node.Alias, depth+1)

	case yaml.ScalarNode:
		return yamlScalar(node)

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			element, err := yamlValue(child, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, element)
		}
		value, err := nbtjson.FromInterface(items)
		if err != nil {
			return nil, fmt.Errorf("yaml line %d: %w", node.Line, err)
		}
		return value, nil

	case yaml.MappingNode:
		compound := make(nbt.Compound, 0, len(node.Content)/2)
		var seen map[string]bool
		if len(node.Content) > 2 {
			seen = make(map[string]bool, len(node.Content)/2)
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
				return nil, fmt.Errorf("yaml line %d: compound keys must be strings, got %s", keyNode.Line, keyNode.Tag)
			}
			if seen != nil {
				if seen[keyNode.Value] {
					return nil, &nbt.DuplicateKeyError{Key: keyNode.Value}
				}
				seen[keyNode.Value] = true
			}
			element, err := yamlValue(valueNode, depth+1)
			if err != nil {
				return nil, err
			}
			compound = append(compound, nbt.Entry{Key: keyNode.Value, Value: element})
		}
		return compound, nil

	case 0:
		// yaml.Unmarshal leaves the node zero-valued for empty input.
		return nil, fmt.Errorf("empty YAML document")

	default:
		return nil, fmt.Errorf("yaml line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

func yamlScalar(node *yaml.Node) (nbt.Value, error) {
	switch node.Tag {
	case "!!int":
		// Base 0 covers the hex/octal/binary and underscore forms the
		// YAML resolver admits alongside plain decimal.
		integer, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("yaml line %d: integer %q: %w", node.Line, node.Value, err)
		}
		if integer >= math.MinInt32 && integer <= math.MaxInt32 {
			return nbt.Int(integer), nil
		}
		return nbt.Long(integer), nil

	case "!!float":
		switch strings.ToLower(node.Value) {
		case ".nan":
			return nbt.Double(math.NaN()), nil
		case ".inf", "+.inf":
			return nbt.Double(math.Inf(1)), nil
		case "-.inf":
			return nbt.Double(math.Inf(-1)), nil
		}
		floating, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("yaml line %d: float %q: %w", node.Line, node.Value, err)
		}
		return nbt.Double(floating), nil

	case "!!bool":
		switch strings.ToLower(node.Value) {
		case "true", "yes", "on":
			return nbt.Byte(1), nil
		case "false", "no", "off":
			return nbt.Byte(0), nil
		}
		return nil, fmt.Errorf("yaml line %d: boolean %q", node.Line, node.Value)

	case "!!str":
		return nbt.String(node.Value), nil

	case "!!binary":
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, node.Value)
		raw, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("yaml line %d: binary scalar: %w", node.Line, err)
		}
		array := make(nbt.ByteArray, len(raw))
		for i, b := range raw {
			array[i] = int8(b)
		}
		return array, nil

	case "!!timestamp":
		// Timestamps have no tagged equivalent; carry the literal text.
		return nbt.String(node.Value), nil

	case "!!null":
		return nil, fmt.Errorf("yaml line %d: null has no tagged equivalent", node.Line)

	default:
		return nil, fmt.Errorf("yaml line %d: unsupported tag %s", node.Line, node.Tag)
	}
}
