/*
Package domain contains the core models of the clicktree component.

It defines the flat input the host sends, the nested tree the builder produces,
and the reports the component sends back. This package is kept pure and free of
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Item: One entry of the flat, ordered input (id, name, level).
  - Node: A rendered Group (owns children, collapsible) or Leaf (selectable).
  - Tree: The root container produced by one render pass, plus its height.
  - RenderConfig: The inbound host payload that drives a render pass.
  - Selection: The outbound report emitted when a leaf label is activated.
  - Snapshot: The per-session state persisted between host round-trips.
*/
package domain
