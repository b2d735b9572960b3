package uwacodec

// FieldBudget is one line of the analyzer's per-field bit breakdown.
type FieldBudget struct {
	Name string
	Kind Kind
	Bits uint
}

// SizeReport is the analyzer's pure-function output for a MessageDescriptor:
// the per-field bit cost, the padded body size, the per-mode framing
// overhead, and totals.
type SizeReport struct {
	Fields []FieldBudget

	BodyBits  uint
	BodyBytes int

	// VaridBytes is the id-prefix cost for modes 2/3: 1 byte for ids up to
	// 127, 2 bytes for larger ids.
	VaridBytes int

	ModePointToPointBytes   int
	ModeSelfDescribingBytes int
	ModeRoutedBytes         int

	// MaxBytes echoes the descriptor's advisory bound, and OverBudget
	// reports whether BodyBytes exceeds it (false when MaxBytes is unset).
	MaxBytes   int
	OverBudget bool
}

// Analyze computes a SizeReport for m without producing any encoded bytes.
func Analyze(m MessageDescriptor) SizeReport {
	report := SizeReport{
		Fields:   make([]FieldBudget, len(m.Fields)),
		MaxBytes: m.MaxBytes,
	}

	for i, f := range m.Fields {
		report.Fields[i] = FieldBudget{Name: f.Name, Kind: f.Kind, Bits: f.Width()}
		report.BodyBits += f.Width()
	}
	report.BodyBytes = int((report.BodyBits + 7) / 8)

	report.VaridBytes = varidSize(m.ID)

	report.ModePointToPointBytes = report.BodyBytes
	report.ModeSelfDescribingBytes = report.VaridBytes + report.BodyBytes
	report.ModeRoutedBytes = routingHeaderBytes + report.VaridBytes + report.BodyBytes

	report.OverBudget = m.MaxBytes > 0 && report.BodyBytes > m.MaxBytes

	return report
}

// varidSize reports how many bytes a varid encoding of id would take: 1
// for ids <= 127 (including the "unassigned" id -1, treated as a single
// placeholder byte for sizing purposes), 2 otherwise.
func varidSize(id int) int {
	if id < 0 || id <= 127 {
		return 1
	}
	return 2
}
