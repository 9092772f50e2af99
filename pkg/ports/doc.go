/*
Package ports defines the driven ports (interfaces) of the clicktree component.

These interfaces decouple the core from the host it is embedded in and from
wherever session state lives, allowing the same component to serve a terminal,
a JSON-lines bridge, an HTTP frontend or an MCP agent.

# Key Interfaces

  - Host: Receives the outbound reports (readiness, frame height, selection).
  - StateStore: Persists per-session collapse state and the last payload.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - OptionsSource: Loads render payloads from a document repository.
*/
package ports
