/*
Package dsl provides a Go DSL for programmatically constructing persisted learning paths.

It allows tests, seeders and tools to describe a path with a fluent builder instead of
hand-writing nodes and transitions. The result is a *domain.Path as the persistence
collaborator would return it.

Example usage:

	b := dsl.New(domain.PathMetadata{Title: "Intro to AI", Description: "...", Language: "en"})

	b.Add(1).Lesson("lo-intro", "What is AI?").Go(2)

	b.Add(2).Question("mc-kind", "Which kind?", "supervised", "unsupervised").
		Branch(0, 3).
		BranchEnd(1)

	b.Add(3).Lesson("lo-supervised", "Supervised learning")

	path, err := b.Build(42)
*/
package dsl
