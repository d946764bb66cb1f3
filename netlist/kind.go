package netlist

// Kind identifies the table an element lives in.
type Kind uint8

const (
	KindModule Kind = iota
	KindInput
	KindOutput
	KindWire
	KindGate
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindWire:
		return "wire"
	case KindGate:
		return "gate"
	default:
		return "unknown"
	}
}

// IsNet reports whether elements of kind k name nets.
func (k Kind) IsNet() bool {
	return k == KindInput || k == KindOutput || k == KindWire
}
