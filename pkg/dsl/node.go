package dsl

import "github.com/SELab-2/Dwengo-4-sub000/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.PersistedNode
	builder *Builder
}

// Lesson references local learning-object content.
func (n *NodeBuilder) Lesson(contentID, title string) *NodeBuilder {
	n.node.Content = domain.LocalRef(contentID)
	n.node.DisplayTitle = title
	n.node.ContentKind = domain.ContentKindLearningObject
	return n
}

// External references catalog content.
func (n *NodeBuilder) External(handle, language string, version int, title string) *NodeBuilder {
	n.node.Content = domain.ExternalRef(handle, language, version)
	n.node.DisplayTitle = title
	n.node.ContentKind = domain.ContentKindLearningObject
	return n
}

// Question marks the node as a decision node on local multiple-choice content.
func (n *NodeBuilder) Question(contentID, title string, options ...string) *NodeBuilder {
	n.node.Content = domain.LocalRef(contentID)
	n.node.DisplayTitle = title
	n.node.ContentKind = domain.ContentKindMultipleChoice
	n.node.AnswerLabels = options
	return n
}

// OpenQuestion references a free-text question. It does not branch.
func (n *NodeBuilder) OpenQuestion(contentID, title string) *NodeBuilder {
	n.node.Content = domain.LocalRef(contentID)
	n.node.DisplayTitle = title
	n.node.ContentKind = domain.ContentKindOpenQuestion
	return n
}

// Go adds the unconditional transition to the target node.
func (n *NodeBuilder) Go(target int64) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		FromNodeID: n.node.ID,
		ToNodeID:   &target,
	})
	return n
}

// Branch adds the transition taken when the answer is option.
func (n *NodeBuilder) Branch(option int, target int64) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		FromNodeID: n.node.ID,
		Option:     &option,
		ToNodeID:   &target,
	})
	return n
}

// BranchEnd adds a terminus for option.
func (n *NodeBuilder) BranchEnd(option int) *NodeBuilder {
	n.node.Transitions = append(n.node.Transitions, domain.Transition{
		FromNodeID: n.node.ID,
		Option:     &option,
	})
	return n
}

// Terminal marks the node as the end of its sequence.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Transitions = nil
	return n
}

// Add continues with another node of the same path.
func (n *NodeBuilder) Add(id int64) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns the underlying domain.PersistedNode.
func (n *NodeBuilder) Build() domain.PersistedNode {
	return n.node
}
