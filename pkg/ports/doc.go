/*
Package ports defines the driven ports (interfaces) of the path editor.

These interfaces decouple the editing core from its collaborators, so the same
session logic runs against memory, file or Redis backends.

# Key Interfaces

  - ContentCatalog: resolves content references to titles, kinds and answer options.
  - PathStore: applies a flattened save atomically and loads persisted paths.
  - DistributedLocker: serializes saves of the same path across replicas.

Adapters verify themselves against RunPathStoreContract and RunContentCatalogContract.
*/
package ports
