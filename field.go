package uwacodec

import "math"

// Kind tags the domain constraint a FieldDescriptor encodes.
type Kind int

const (
	KindBool Kind = iota
	KindUInt
	KindSInt
	KindEnum
	KindFixedBytes
	KindFixedString
	KindBoundedFloat
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindUInt:
		return "UInt"
	case KindSInt:
		return "SInt"
	case KindEnum:
		return "Enum"
	case KindFixedBytes:
		return "FixedBytes"
	case KindFixedString:
		return "FixedString"
	case KindBoundedFloat:
		return "BoundedFloat"
	default:
		return "Unknown"
	}
}

// FieldDescriptor is an immutable, ordered schema entry. Name is used only
// for diagnostics (error messages, the analyzer). The remaining fields are
// kind-specific parameters; only the ones relevant to Kind are meaningful.
type FieldDescriptor struct {
	Name string
	Kind Kind

	// UInt / SInt
	Lo int64
	Hi int64

	// Enum
	Values []string

	// FixedBytes / FixedString
	Length int

	// BoundedFloat
	Min       float64
	Max       float64
	Precision int

	width uint // cached, computed once at construction
}

// NewBoolField builds a 1-bit boolean field.
func NewBoolField(name string) (FieldDescriptor, error) {
	return FieldDescriptor{Name: name, Kind: KindBool, width: 1}, nil
}

// NewUIntField builds an inclusive-range unsigned integer field.
func NewUIntField(name string, lo, hi int64) (FieldDescriptor, error) {
	if lo < 0 {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: UInt lo %d must be non-negative", name, lo)
	}
	if hi < lo {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: UInt hi %d < lo %d", name, hi, lo)
	}
	f := FieldDescriptor{Name: name, Kind: KindUInt, Lo: lo, Hi: hi}
	f.width = widthForRange(uint64(hi - lo))
	return f, nil
}

// NewSIntField builds an inclusive-range signed integer field.
func NewSIntField(name string, lo, hi int64) (FieldDescriptor, error) {
	if hi < lo {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: SInt hi %d < lo %d", name, hi, lo)
	}
	f := FieldDescriptor{Name: name, Kind: KindSInt, Lo: lo, Hi: hi}
	f.width = widthForRange(uint64(hi - lo))
	return f, nil
}

// NewEnumField builds a field over an ordered set of distinct symbolic
// values. Cardinality must be at least 1.
func NewEnumField(name string, values []string) (FieldDescriptor, error) {
	if len(values) == 0 {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: Enum needs at least one value", name)
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: duplicate enum value %q", name, v)
		}
		seen[v] = struct{}{}
	}
	cp := make([]string, len(values))
	copy(cp, values)
	f := FieldDescriptor{Name: name, Kind: KindEnum, Values: cp}
	f.width = widthForRange(uint64(len(cp) - 1))
	return f, nil
}

// NewFixedBytesField builds a fixed-length byte string field.
func NewFixedBytesField(name string, length int) (FieldDescriptor, error) {
	if length < 0 {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: FixedBytes length %d must be non-negative", name, length)
	}
	return FieldDescriptor{Name: name, Kind: KindFixedBytes, Length: length, width: uint(8 * length)}, nil
}

// NewFixedStringField builds a fixed-length UTF-8 string field, measured in
// bytes (UTF-8 code units), right-padded with NUL on encode.
func NewFixedStringField(name string, length int) (FieldDescriptor, error) {
	if length < 0 {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: FixedString length %d must be non-negative", name, length)
	}
	return FieldDescriptor{Name: name, Kind: KindFixedString, Length: length, width: uint(8 * length)}, nil
}

// NewBoundedFloatField builds a real-valued field discretized to a fixed
// decimal precision. min must be strictly less than max, and precision must
// be in [0, 6].
func NewBoundedFloatField(name string, min, max float64, precision int) (FieldDescriptor, error) {
	if !(min < max) {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: BoundedFloat min %v must be < max %v", name, min, max)
	}
	if precision < 0 || precision > 6 {
		return FieldDescriptor{}, wrapf(ErrInvalidSchema, "field %q: BoundedFloat precision %d must be in [0,6]", name, precision)
	}
	scale := scaleFor(precision)
	steps := roundHalfToEven((max - min) * scale)
	f := FieldDescriptor{Name: name, Kind: KindBoundedFloat, Min: min, Max: max, Precision: precision}
	f.width = widthForRange(uint64(steps))
	return f, nil
}

// Width reports the field's fixed bit width, a pure function of its
// parameters established at construction time.
func (f FieldDescriptor) Width() uint {
	return f.width
}

// widthForRange returns ceil(log2(span+1)), the number of bits needed to
// represent the inclusive integer range [0, span]. A span of 0 (a
// degenerate, single-valued field) needs 0 bits.
func widthForRange(span uint64) uint {
	if span == 0 {
		return 0
	}
	count := span + 1
	return uint(bitLen(count - 1))
}

// bitLen returns the number of bits required to represent v (0 for v==0),
// i.e. floor(log2(v))+1 for v>0.
func bitLen(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

func scaleFor(precision int) float64 {
	return math.Pow(10, float64(precision))
}

// roundHalfToEven implements banker's rounding on x, the only rounding mode
// this codec permits so independently-built encoders agree on the wire
// bytes for identical input.
func roundHalfToEven(x float64) int64 {
	return int64(math.RoundToEven(x))
}
