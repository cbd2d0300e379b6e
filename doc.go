/*
Package automata validates and runs deterministic automata: finite automata (DFA),
pushdown automata (PDA) and single-tape Turing machines (TM).

A caller submits an untyped description of an automaton, gets back an identifier, and then
tests input strings against it for an accept/reject verdict. Descriptions are validated
once and turned into immutable typed values, so runs never consult the raw form and can
proceed concurrently.

# Concept

The Service is the library entry point. It wires an AutomatonStore (in memory by default),
the runtime engines and the registry. The same Service backs the HTTP server, the MCP
server and the CLI, so every surface enforces the same validation rules and step budgets.

# Key Features

  - Strict validation: every referenced state and symbol must be declared; the first
    violation is reported with its field, key and value.
  - Bounded execution: PDA and TM runs stop with ErrStepLimitExceeded instead of looping.
  - Observability: lifecycle hooks feed Prometheus metrics and structured logs.
  - Visualization: Mermaid and Graphviz DOT text for every stored automaton.

# Usage

	svc := automata.New(automata.WithMaxSteps(10_000))

	id, err := svc.Create(ctx, domain.KindDFA, definition)
	if err != nil {
		// errors.Is(err, domain.ErrInvalidDefinition)
	}

	res, err := svc.Test(ctx, id, domain.KindDFA, "aab")
	fmt.Println(res.Verdict, res.Steps)

Description files (JSON or YAML) carry a kind, an optional name and the definition:

	kind: dfa
	name: ends-in-b
	definition:
	  states: [q0, q1]
	  input_alphabet: [a, b]
	  initial_state: q0
	  final_states: [q1]
	  transitions:
	    q0: {a: q0, b: q1}
	    q1: {a: q0, b: q1}

A directory of such files can be preloaded with Service.LoadDir.
*/
package automata
