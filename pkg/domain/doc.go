/*
Package domain contains the core domain models of the learning-path editor.

It defines the entities a teacher manipulates while authoring a path: content references,
nodes (persisted or draft), transitions, branch contexts and the payload handed to the
persistence collaborator on save. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - ContentRef: Points to a unit of learning content, either local or from the shared catalog.
  - Node: A step in the path. Either a PersistedNode (server id) or a DraftNode (session sequence).
  - NodeKey: The uniform, collision-free identity of a node within an editing session.
  - BranchContext: Where an ordered sequence lives (root, or under a decision node's option).
  - Transition: The persisted edge between two nodes, optionally tagged with an option index.
  - SavePayload: The flattened structure submitted in one atomic save.
*/
package domain
