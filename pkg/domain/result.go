package domain

// Verdict is the outcome of a completed run.
type Verdict int

const (
	Rejected Verdict = iota
	Accepted
)

func (v Verdict) String() string {
	if v == Accepted {
		return "accepted"
	}
	return "rejected"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Halt names the reason a run stopped.
type Halt string

const (
	// HaltInputConsumed: the DFA read its whole input.
	HaltInputConsumed Halt = "input_consumed"
	// HaltUnknownSymbol: the input contained a symbol outside the input alphabet.
	HaltUnknownSymbol Halt = "unknown_symbol"
	// HaltNoTransition: no transition applies to the current configuration.
	HaltNoTransition Halt = "no_transition"
	// HaltStackEmpty: the PDA stack was exhausted.
	HaltStackEmpty Halt = "stack_empty"
)

// Result describes a finished run.
type Result struct {
	Verdict Verdict `json:"verdict"`
	// Steps is the number of transitions taken.
	Steps int `json:"steps"`
	// State is the control state the machine halted in.
	State State `json:"final_state"`
	Halt  Halt  `json:"halt"`
}

// Accepted reports whether the run accepted its input.
func (r Result) Accepted() bool { return r.Verdict == Accepted }
