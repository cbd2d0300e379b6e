/*
Package domain contains the core domain models of the automata service.

It defines the primitive symbol model shared by every engine, the typed automaton
values produced by the definition validator, the outcome of a simulation and the
error taxonomy. This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol / State: single code point tokens and opaque state labels.
  - DFA, PDA, TM: validated, immutable automaton values (see Automaton).
  - Result: the verdict of one run plus the configuration it halted in.
  - Entry: a stored automaton together with its identifier and kind.
*/
package domain
