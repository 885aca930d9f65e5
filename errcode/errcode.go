package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Lookup. Always recoverable: the caller tries the next candidate.
	NotFound Code = "not_found"

	// Topology configuration. Fatal at initialisation.
	DuplicateName     Code = "duplicate_name"
	UnknownController Code = "unknown_controller"
	ChipSelectInUse   Code = "chip_select_in_use"
	PinOutOfRange     Code = "pin_out_of_range"
	PinReused         Code = "pin_reused"
	PinInUse          Code = "pin_in_use"
	InvalidPins       Code = "invalid_pins"
	UnknownUnit       Code = "unknown_unit"
	UnitInUse         Code = "unit_in_use"
	InvalidMode       Code = "invalid_mode"
	InvalidParams     Code = "invalid_params"
	MissingISR        Code = "missing_isr"
	IRQTableFull      Code = "irq_table_full"

	Unsupported Code = "unsupported"

	Error Code = "error" // generic fallback
)

// E keeps context and an optional cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.X) match a wrapped E carrying code X.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// New returns an *E for op with a message.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
