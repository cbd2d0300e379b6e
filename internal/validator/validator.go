// Package validator turns raw, untyped automaton descriptions into typed domain values.
//
// Checks run in a fixed order and stop at the first violation:
// field shapes, initial state, final states, reserved symbols, transitions.
package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// Validate checks raw against the invariants of kind and returns the typed automaton.
// Failures are *domain.ValidationError (errors.Is(err, domain.ErrInvalidDefinition)).
func Validate(kind domain.Kind, raw map[string]any) (domain.Automaton, error) {
	switch kind {
	case domain.KindDFA:
		return validateDFA(raw)
	case domain.KindPDA:
		return validatePDA(raw)
	case domain.KindTM:
		return validateTM(raw)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

var (
	dfaFields = []string{
		dto.FieldStates, dto.FieldInputAlphabet, dto.FieldInitialState,
		dto.FieldFinalStates, dto.FieldTransitions,
	}
	dfaSchema = schema.Schema{
		dto.FieldStates:        schema.Slice(schema.String()),
		dto.FieldInputAlphabet: schema.Slice(schema.Symbol()),
		dto.FieldInitialState:  schema.String(),
		dto.FieldFinalStates:   schema.Slice(schema.String()),
		dto.FieldTransitions:   schema.Map(schema.Map(schema.String())),
	}

	pdaFields = []string{
		dto.FieldStates, dto.FieldInputAlphabet, dto.FieldStackAlphabet, dto.FieldInitialState,
		dto.FieldInitialStackSymbol, dto.FieldFinalStates, dto.FieldTransitions,
	}
	pdaSchema = schema.Schema{
		dto.FieldStates:             schema.Slice(schema.String()),
		dto.FieldInputAlphabet:      schema.Slice(schema.Symbol()),
		dto.FieldStackAlphabet:      schema.Slice(schema.Symbol()),
		dto.FieldInitialState:       schema.String(),
		dto.FieldInitialStackSymbol: schema.Symbol(),
		dto.FieldFinalStates:        schema.Slice(schema.String()),
		dto.FieldTransitions: schema.Map(schema.Map(schema.Map(
			schema.Tuple(schema.String(), schema.Slice(schema.Symbol())),
		))),
	}

	tmFields = []string{
		dto.FieldStates, dto.FieldInputAlphabet, dto.FieldTapeAlphabet, dto.FieldInitialState,
		dto.FieldFinalStates, dto.FieldBlankSymbol, dto.FieldTransitions,
	}
	tmSchema = schema.Schema{
		dto.FieldStates:        schema.Slice(schema.String()),
		dto.FieldInputAlphabet: schema.Slice(schema.Symbol()),
		dto.FieldTapeAlphabet:  schema.Slice(schema.Symbol()),
		dto.FieldInitialState:  schema.String(),
		dto.FieldFinalStates:   schema.Slice(schema.String()),
		dto.FieldBlankSymbol:   schema.Symbol(),
		dto.FieldTransitions: schema.Map(schema.Map(
			schema.Tuple(schema.String(), schema.Symbol(), schema.String()),
		)),
	}
)

func validateDFA(raw map[string]any) (domain.Automaton, error) {
	var desc dto.DFADescription
	if err := decode(dfaSchema, dfaFields, raw, &desc); err != nil {
		return nil, err
	}
	ctrl, err := control(desc.Control)
	if err != nil {
		return nil, err
	}

	dfa := &domain.DFA{Control: *ctrl, Delta: make(map[domain.DFAKey]domain.State)}
	for _, from := range sortedKeys(desc.Transitions) {
		if err := declaredSource(ctrl, from); err != nil {
			return nil, err
		}
		row := desc.Transitions[from]
		for _, sym := range sortedKeys(row) {
			key := path(from, sym)
			if !ctrl.InputAlphabet.Has(domain.Symbol(sym)) {
				return nil, undeclaredSymbol(key, sym, dto.FieldInputAlphabet)
			}
			to := row[sym]
			if !ctrl.States.Has(domain.State(to)) {
				return nil, undeclaredTarget(key, to)
			}
			dfa.Delta[domain.DFAKey{From: domain.State(from), Symbol: domain.Symbol(sym)}] = domain.State(to)
		}
	}
	return dfa, nil
}

func validatePDA(raw map[string]any) (domain.Automaton, error) {
	var desc dto.PDADescription
	if err := decode(pdaSchema, pdaFields, raw, &desc); err != nil {
		return nil, err
	}
	ctrl, err := control(desc.Control)
	if err != nil {
		return nil, err
	}

	stack := symbols(desc.StackAlphabet)
	initialTop := domain.Symbol(desc.InitialStackSymbol)
	if !stack.Has(initialTop) {
		return nil, &domain.ValidationError{
			Code:   domain.CodeUndeclaredStackTop,
			Field:  dto.FieldInitialStackSymbol,
			Value:  desc.InitialStackSymbol,
			Reason: "not declared in " + dto.FieldStackAlphabet,
		}
	}

	pda := &domain.PDA{
		Control:            *ctrl,
		StackAlphabet:      stack,
		InitialStackSymbol: initialTop,
		Delta:              make(map[domain.PDAKey]domain.PDAMove),
	}
	for _, from := range sortedKeys(desc.Transitions) {
		if err := declaredSource(ctrl, from); err != nil {
			return nil, err
		}
		byInput := desc.Transitions[from]
		for _, in := range sortedKeys(byInput) {
			if in != string(domain.Epsilon) && !ctrl.InputAlphabet.Has(domain.Symbol(in)) {
				return nil, undeclaredSymbol(path(from, in), in, dto.FieldInputAlphabet)
			}
			byTop := byInput[in]
			for _, top := range sortedKeys(byTop) {
				key := path(from, in, top)
				if !stack.Has(domain.Symbol(top)) {
					return nil, undeclaredSymbol(key, top, dto.FieldStackAlphabet)
				}
				// Shape was checked by pdaSchema: [target, [push...]].
				move := byTop[top]
				to, _ := move[0].(string)
				if !ctrl.States.Has(domain.State(to)) {
					return nil, undeclaredTarget(key, to)
				}
				push, err := pushSequence(key, move[1], stack)
				if err != nil {
					return nil, err
				}
				pda.Delta[domain.PDAKey{
					From:  domain.State(from),
					Input: domain.Symbol(in),
					Top:   domain.Symbol(top),
				}] = domain.PDAMove{To: domain.State(to), Push: push}
			}
		}
	}
	return pda, nil
}

func validateTM(raw map[string]any) (domain.Automaton, error) {
	var desc dto.TMDescription
	if err := decode(tmSchema, tmFields, raw, &desc); err != nil {
		return nil, err
	}
	ctrl, err := control(desc.Control)
	if err != nil {
		return nil, err
	}

	tape := symbols(desc.TapeAlphabet)
	blank := domain.Symbol(desc.BlankSymbol)
	switch {
	case !tape.Has(blank):
		return nil, &domain.ValidationError{
			Code:   domain.CodeInvalidBlank,
			Field:  dto.FieldBlankSymbol,
			Value:  desc.BlankSymbol,
			Reason: "not declared in " + dto.FieldTapeAlphabet,
		}
	case ctrl.InputAlphabet.Has(blank):
		return nil, &domain.ValidationError{
			Code:   domain.CodeInvalidBlank,
			Field:  dto.FieldBlankSymbol,
			Value:  desc.BlankSymbol,
			Reason: "must not belong to " + dto.FieldInputAlphabet,
		}
	}
	for _, sym := range domain.Sorted(ctrl.InputAlphabet) {
		if !tape.Has(sym) {
			return nil, &domain.ValidationError{
				Code:   domain.CodeUndeclaredSymbol,
				Field:  dto.FieldInputAlphabet,
				Value:  string(sym),
				Reason: "input symbol not declared in " + dto.FieldTapeAlphabet,
			}
		}
	}

	tm := &domain.TM{
		Control:      *ctrl,
		TapeAlphabet: tape,
		Blank:        blank,
		Delta:        make(map[domain.TMKey]domain.TMMove),
	}
	for _, from := range sortedKeys(desc.Transitions) {
		if err := declaredSource(ctrl, from); err != nil {
			return nil, err
		}
		row := desc.Transitions[from]
		for _, sym := range sortedKeys(row) {
			key := path(from, sym)
			if !tape.Has(domain.Symbol(sym)) {
				return nil, undeclaredSymbol(key, sym, dto.FieldTapeAlphabet)
			}
			// Shape was checked by tmSchema: [target, write, direction].
			move := row[sym]
			to, write, dir := move[0], move[1], move[2]
			if !ctrl.States.Has(domain.State(to)) {
				return nil, undeclaredTarget(key, to)
			}
			if !tape.Has(domain.Symbol(write)) {
				return nil, undeclaredSymbol(key, write, dto.FieldTapeAlphabet)
			}
			d, ok := domain.ParseDirection(dir)
			if !ok {
				return nil, &domain.ValidationError{
					Code:   domain.CodeInvalidDirection,
					Field:  dto.FieldTransitions,
					Key:    key,
					Value:  dir,
					Reason: `head move must be "L" or "R"`,
				}
			}
			tm.Delta[domain.TMKey{From: domain.State(from), Symbol: domain.Symbol(sym)}] = domain.TMMove{
				To:    domain.State(to),
				Write: domain.Symbol(write),
				Move:  d,
			}
		}
	}
	return tm, nil
}

// decode checks the field shapes and decodes raw into out.
func decode(s schema.Schema, fields []string, raw map[string]any, out any) error {
	if err := schema.ValidateFields(s, raw, fields...); err != nil {
		first := schema.First(err)
		if first == nil {
			return err
		}
		if first.Missing() {
			return &domain.ValidationError{
				Code:   domain.CodeMissingField,
				Field:  first.Key,
				Reason: "required field is missing",
			}
		}
		return &domain.ValidationError{
			Code:   domain.CodeMalformedField,
			Field:  first.Key,
			Key:    first.Path,
			Reason: first.Reason,
		}
	}

	if err := mapstructure.Decode(raw, out); err != nil {
		return &domain.ValidationError{
			Code:   domain.CodeMalformedField,
			Field:  "definition",
			Reason: err.Error(),
		}
	}
	return nil
}

// control validates the initial and final states against the declared states.
func control(desc dto.Control) (*domain.Control, error) {
	c := &domain.Control{
		States:        domain.NewSet[domain.State](),
		InputAlphabet: symbols(desc.InputAlphabet),
		Initial:       domain.State(desc.InitialState),
		Finals:        domain.NewSet[domain.State](),
	}
	for _, s := range desc.States {
		c.States[domain.State(s)] = struct{}{}
	}

	if !c.States.Has(c.Initial) {
		return nil, &domain.ValidationError{
			Code:   domain.CodeUndeclaredInitial,
			Field:  dto.FieldInitialState,
			Value:  desc.InitialState,
			Reason: "not declared in " + dto.FieldStates,
		}
	}
	for i, f := range desc.FinalStates {
		if !c.States.Has(domain.State(f)) {
			return nil, &domain.ValidationError{
				Code:   domain.CodeUndeclaredFinal,
				Field:  dto.FieldFinalStates,
				Key:    fmt.Sprint(i),
				Value:  f,
				Reason: "not declared in " + dto.FieldStates,
			}
		}
		c.Finals[domain.State(f)] = struct{}{}
	}
	return c, nil
}

func pushSequence(key string, raw any, stack domain.Alphabet) ([]domain.Symbol, error) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	}
	push := make([]domain.Symbol, 0, len(items))
	for _, item := range items {
		sym, _ := item.(string)
		if !stack.Has(domain.Symbol(sym)) {
			return nil, undeclaredSymbol(key, sym, dto.FieldStackAlphabet)
		}
		push = append(push, domain.Symbol(sym))
	}
	return push, nil
}

func declaredSource(ctrl *domain.Control, from string) error {
	if ctrl.States.Has(domain.State(from)) {
		return nil
	}
	return &domain.ValidationError{
		Code:   domain.CodeUndeclaredState,
		Field:  dto.FieldTransitions,
		Key:    from,
		Value:  from,
		Reason: "source state not declared in " + dto.FieldStates,
	}
}

func undeclaredTarget(key, to string) error {
	return &domain.ValidationError{
		Code:   domain.CodeUndeclaredState,
		Field:  dto.FieldTransitions,
		Key:    key,
		Value:  to,
		Reason: "target state not declared in " + dto.FieldStates,
	}
}

func undeclaredSymbol(key, sym, alphabet string) error {
	return &domain.ValidationError{
		Code:   domain.CodeUndeclaredSymbol,
		Field:  dto.FieldTransitions,
		Key:    key,
		Value:  sym,
		Reason: "symbol not declared in " + alphabet,
	}
}

func symbols(in []string) domain.Alphabet {
	a := make(domain.Alphabet, len(in))
	for _, s := range in {
		a[domain.Symbol(s)] = struct{}{}
	}
	return a
}

func path(parts ...string) string {
	out := ""
	for i, p := range parts {
		if p == string(domain.Epsilon) {
			p = "ε"
		}
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
