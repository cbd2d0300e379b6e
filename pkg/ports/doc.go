/*
Package ports defines the driven ports (interfaces) for the automata registry.

These interfaces decouple the registry from concrete storage and catalog sources,
so the same core runs behind HTTP, MCP and the CLI.

# Key Interfaces

  - AutomatonStore: keeps validated automata, keyed by identifier.
  - CatalogLoader: reads automaton descriptions (e.g., from Loam or a file) for preloading.

RunAutomatonStoreContract and RunCatalogLoaderContract are reusable test suites for adapters.
*/
package ports
