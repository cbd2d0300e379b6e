package automata_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

// ExampleNew shows the full create-then-test cycle for a DFA.
func ExampleNew() {
	svc := automata.New()
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.KindDFA, map[string]any{
		"states":         []any{"q0", "q1"},
		"input_alphabet": []any{"a", "b"},
		"initial_state":  "q0",
		"final_states":   []any{"q1"},
		"transitions": map[string]any{
			"q0": map[string]any{"a": "q0", "b": "q1"},
			"q1": map[string]any{"a": "q0", "b": "q1"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, input := range []string{"aab", "aba"} {
		res, err := svc.Test(ctx, id, domain.KindDFA, input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s after %d steps in %s\n", input, res.Verdict, res.Steps, res.State)
	}

	// Output:
	// aab: accepted after 3 steps in q1
	// aba: rejected after 3 steps in q0
}

// ExampleService_Create_invalid shows how validation failures are reported.
func ExampleService_Create_invalid() {
	svc := automata.New()

	_, err := svc.Create(context.Background(), domain.KindDFA, map[string]any{
		"states":         []any{"q0"},
		"input_alphabet": []any{"a"},
		"initial_state":  "q9",
		"final_states":   []any{},
		"transitions":    map[string]any{},
	})

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(verr.Code, verr.Field, verr.Value)
	}

	// Output:
	// undeclared_initial_state initial_state q9
}
