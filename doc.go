/*
Package dwengo is the learning-path editor of the Dwengo platform.

A teacher composes a learning path as a tree: an ordered sequence of nodes, each pointing at a
unit of learning content. A node that references a multiple-choice question is a decision node.
It ends its sequence, and every answer option opens a branch with a sequence of its own.

The editor keeps the whole tree in memory while the teacher inserts, reorders and deletes nodes.
Nothing reaches the store until the path is saved, and a save submits the entire structure in one
request. New nodes live as drafts until then.

# Usage

	svc, err := dwengo.New(memory.NewStore(), memory.NewCatalog(content...))
	if err != nil {
		log.Fatal(err)
	}

	s, _ := svc.Create(ctx, domain.PathMetadata{Title: "Intro to AI", Description: "...", Language: "en"})
	_ = s.StartInsertion(0, domain.Root)
	_, _ = s.PickContent(ctx, domain.LocalRef("lo-intro"))
	pathID, err := svc.Sessions().Save(ctx, s.ID())

# Architecture

The domain types live in pkg/domain, the collaborator contracts in pkg/ports and the
adapters (memory, file, redis, http, cache) under pkg/adapters. The session manager in
pkg/session guards concurrent access to the sessions.
*/
package dwengo
