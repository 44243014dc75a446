package dsl

import (
	"testing"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

func TestBuilder_BranchingPath(t *testing.T) {
	b := New(domain.PathMetadata{Title: "AI", Description: "Intro", Language: "en"})

	b.Add(1).Lesson("lo-1", "Intro").Go(2)
	b.Add(2).Question("mc-1", "Pick", "x", "y").Branch(0, 3).BranchEnd(1)
	b.Add(3).Lesson("lo-3", "Deeper")

	path, err := b.Build(9)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if path.ID != 9 || path.StartNodeID == nil || *path.StartNodeID != 1 {
		t.Fatalf("unexpected path header: id=%d start=%v", path.ID, path.StartNodeID)
	}
	if len(path.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(path.Nodes))
	}

	q := path.NodeByID()[2]
	if !domain.IsDecision(q) {
		t.Errorf("node 2 should be a decision node")
	}
	if len(q.Transitions) != 2 {
		t.Fatalf("Expected 2 transitions on the question, got %d", len(q.Transitions))
	}
	if *q.Transitions[0].Option != 0 || *q.Transitions[0].ToNodeID != 3 {
		t.Errorf("unexpected first option transition: %+v", q.Transitions[0])
	}
	if q.Transitions[1].ToNodeID != nil {
		t.Errorf("option 1 should be a terminus")
	}
}

func TestBuilder_UndefinedTarget(t *testing.T) {
	b := New(domain.PathMetadata{})
	b.Add(1).Lesson("lo-1", "Intro").Go(5)

	if _, err := b.Build(1); err == nil {
		t.Fatal("expected error for transition to undefined node")
	}
}
