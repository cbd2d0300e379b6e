package dto

// Description field names shared by the validator, the HTTP adapter and the catalog.
const (
	FieldStates             = "states"
	FieldInputAlphabet      = "input_alphabet"
	FieldStackAlphabet      = "stack_alphabet"
	FieldTapeAlphabet       = "tape_alphabet"
	FieldInitialState       = "initial_state"
	FieldInitialStackSymbol = "initial_stack_symbol"
	FieldFinalStates        = "final_states"
	FieldBlankSymbol        = "blank_symbol"
	FieldTransitions        = "transitions"
)

// Control holds the fields every automaton description carries.
// It uses "mapstructure" tags so raw JSON/YAML trees decode directly into it.
type Control struct {
	States        []string `json:"states" mapstructure:"states"`
	InputAlphabet []string `json:"input_alphabet" mapstructure:"input_alphabet"`
	InitialState  string   `json:"initial_state" mapstructure:"initial_state"`
	FinalStates   []string `json:"final_states" mapstructure:"final_states"`
}

// DFADescription is the raw shape of a DFA: transitions[state][symbol] = target.
type DFADescription struct {
	Control     `mapstructure:",squash"`
	Transitions map[string]map[string]string `json:"transitions" mapstructure:"transitions"`
}

// PDADescription is the raw shape of a PDA:
// transitions[state][input or ""][stack top] = [target, [push...]].
type PDADescription struct {
	Control            `mapstructure:",squash"`
	StackAlphabet      []string                                `json:"stack_alphabet" mapstructure:"stack_alphabet"`
	InitialStackSymbol string                                  `json:"initial_stack_symbol" mapstructure:"initial_stack_symbol"`
	Transitions        map[string]map[string]map[string][]any `json:"transitions" mapstructure:"transitions"`
}

// TMDescription is the raw shape of a TM: transitions[state][symbol] = [target, write, "L"|"R"].
type TMDescription struct {
	Control      `mapstructure:",squash"`
	TapeAlphabet []string                       `json:"tape_alphabet" mapstructure:"tape_alphabet"`
	BlankSymbol  string                         `json:"blank_symbol" mapstructure:"blank_symbol"`
	Transitions  map[string]map[string][]string `json:"transitions" mapstructure:"transitions"`
}

// Envelope is the on-disk / catalog form of a description.
type Envelope struct {
	Kind       string         `json:"kind" yaml:"kind" mapstructure:"kind"`
	Name       string         `json:"name,omitempty" yaml:"name" mapstructure:"name"`
	Definition map[string]any `json:"definition" yaml:"definition" mapstructure:"definition"`
}
