// Package render writes lisp values and environments for display.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/lisp"
)

// Format is an output format.
type Format uint

// Available output formats.
const (
	FormatLisp Format = iota
	FormatJSON
	FormatYAML
	numFormats
)

var formatStrings = [numFormats]string{
	FormatLisp: "lisp",
	FormatJSON: "json",
	FormatYAML: "yaml",
}

func (f Format) String() string {
	if f >= numFormats {
		return "invalid"
	}
	return formatStrings[f]
}

// Formats returns the names of all formats.
func Formats() []string {
	return formatStrings[:]
}

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatStrings {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (expected one of %s)", s, strings.Join(Formats(), ", "))
}

// Value writes v to w in format f followed by a newline.
//
// In JSON and YAML an atom is a string and a list is an array.  An improper
// list is written as nested pairs, objects with "car" and "cdr" keys.
func Value(w io.Writer, v *lisp.LVal, f Format) error {
	switch f {
	case FormatLisp:
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(JSONValue(v))
	case FormatYAML:
		return encodeYAML(w, YAMLNode(v))
	default:
		return fmt.Errorf("invalid format: %v", f)
	}
}

// Environ writes the bindings of env to w in format f.  Bindings are written
// in the order names were first bound.
func Environ(w io.Writer, env *environ.Environ, f Format) error {
	switch f {
	case FormatLisp:
		return env.Each(func(name string, v *lisp.LVal) error {
			_, err := fmt.Fprintf(w, "%s = %v\n", name, v)
			return err
		})
	case FormatJSON:
		return environJSON(w, env)
	case FormatYAML:
		node := &yaml.Node{Kind: yaml.MappingNode}
		env.Each(func(name string, v *lisp.LVal) error {
			node.Content = append(node.Content, stringNode(name), YAMLNode(v))
			return nil
		})
		return encodeYAML(w, node)
	default:
		return fmt.Errorf("invalid format: %v", f)
	}
}

// JSONValue returns a value that encodes v with encoding/json.
func JSONValue(v *lisp.LVal) interface{} {
	switch {
	case v.IsAtom():
		return v.Str
	case v.IsDotted():
		car, _ := lisp.CAR(v)
		cdr, _ := lisp.CDR(v)
		return map[string]interface{}{
			"car": JSONValue(car),
			"cdr": JSONValue(cdr),
		}
	default:
		lis := make([]interface{}, len(v.Cells))
		for i := range v.Cells {
			lis[i] = JSONValue(v.Cells[i])
		}
		return lis
	}
}

// environJSON writes an object whose keys are in binding order, which a Go
// map cannot preserve.
func environJSON(w io.Writer, env *environ.Environ) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	err := env.Each(func(name string, v *lisp.LVal) error {
		if buf.Len() > 1 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		val, err := json.Marshal(JSONValue(v))
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(val)
		return nil
	})
	if err != nil {
		return err
	}
	buf.WriteString("}\n")
	_, err = w.Write(buf.Bytes())
	return err
}

// YAMLNode returns a yaml node representing v.  Lists are rendered in flow
// style.
func YAMLNode(v *lisp.LVal) *yaml.Node {
	switch {
	case v.IsAtom():
		return stringNode(v.Str)
	case v.IsDotted():
		car, _ := lisp.CAR(v)
		cdr, _ := lisp.CDR(v)
		return &yaml.Node{
			Kind:  yaml.MappingNode,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				stringNode("car"), YAMLNode(car),
				stringNode("cdr"), YAMLNode(cdr),
			},
		}
	default:
		node := &yaml.Node{
			Kind:  yaml.SequenceNode,
			Style: yaml.FlowStyle,
		}
		for _, c := range v.Cells {
			node.Content = append(node.Content, YAMLNode(c))
		}
		return node
	}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: s,
	}
}

func encodeYAML(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml: encoder close: %w", err)
	}
	return nil
}
