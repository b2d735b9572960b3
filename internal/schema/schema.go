// Package schema translates externally validated schema descriptions into
// the codec's internal FieldDescriptor/MessageDescriptor values. The
// validation library that produced a FieldSpec (bounds checking, name
// uniqueness, etc. at the schema-authoring stage) is an external
// collaborator this package never reimplements - it only performs the
// construction-time checks uwacodec.FieldDescriptor itself requires
// (ErrInvalidSchema on violation).
package schema

import (
	"fmt"

	"github.com/oceancomm/uwacodec"
)

// FieldKind mirrors uwacodec.Kind as a string so schema sources (YAML,
// JSON, generated code) can name a kind without importing codec internals.
type FieldKind string

const (
	KindBool         FieldKind = "bool"
	KindUInt         FieldKind = "uint"
	KindSInt         FieldKind = "sint"
	KindEnum         FieldKind = "enum"
	KindFixedBytes   FieldKind = "bytes"
	KindFixedString  FieldKind = "string"
	KindBoundedFloat FieldKind = "float"
)

// FieldSpec is the plain, already-validated field description an external
// schema front end hands to this package.
type FieldSpec struct {
	Name string    `yaml:"name" json:"name"`
	Kind FieldKind `yaml:"kind" json:"kind"`

	Lo int64 `yaml:"lo,omitempty" json:"lo,omitempty"`
	Hi int64 `yaml:"hi,omitempty" json:"hi,omitempty"`

	Values []string `yaml:"values,omitempty" json:"values,omitempty"`

	Length int `yaml:"length,omitempty" json:"length,omitempty"`

	Min       float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Precision int     `yaml:"precision,omitempty" json:"precision,omitempty"`
}

// MessageSpec is the plain schema description for one message type.
type MessageSpec struct {
	ID       int         `yaml:"id" json:"id"`
	MaxBytes int         `yaml:"max_bytes,omitempty" json:"max_bytes,omitempty"`
	Fields   []FieldSpec `yaml:"fields" json:"fields"`
}

// Compile converts a MessageSpec into an immutable uwacodec.MessageDescriptor,
// performing the bounds checks uwacodec.FieldDescriptor requires. It does
// not assume values were already validated by an external front end -
// each field constructor is called and its error, if any, is returned
// unchanged so callers can match on uwacodec's error kinds.
func Compile(spec MessageSpec) (uwacodec.MessageDescriptor, error) {
	fields := make([]uwacodec.FieldDescriptor, len(spec.Fields))
	for i, fs := range spec.Fields {
		f, err := compileField(fs)
		if err != nil {
			return uwacodec.MessageDescriptor{}, fmt.Errorf("field %d (%q): %w", i, fs.Name, err)
		}
		fields[i] = f
	}

	// 0 is a legal id; callers that want mode 1 only (no id assigned)
	// should set spec.ID to -1 explicitly.
	return uwacodec.NewMessageDescriptor(spec.ID, spec.MaxBytes, fields)
}

func compileField(fs FieldSpec) (uwacodec.FieldDescriptor, error) {
	switch fs.Kind {
	case KindBool:
		return uwacodec.NewBoolField(fs.Name)
	case KindUInt:
		return uwacodec.NewUIntField(fs.Name, fs.Lo, fs.Hi)
	case KindSInt:
		return uwacodec.NewSIntField(fs.Name, fs.Lo, fs.Hi)
	case KindEnum:
		return uwacodec.NewEnumField(fs.Name, fs.Values)
	case KindFixedBytes:
		return uwacodec.NewFixedBytesField(fs.Name, fs.Length)
	case KindFixedString:
		return uwacodec.NewFixedStringField(fs.Name, fs.Length)
	case KindBoundedFloat:
		return uwacodec.NewBoundedFloatField(fs.Name, fs.Min, fs.Max, fs.Precision)
	default:
		return uwacodec.FieldDescriptor{}, fmt.Errorf("%s: %w", fs.Kind, uwacodec.ErrInvalidSchema)
	}
}
