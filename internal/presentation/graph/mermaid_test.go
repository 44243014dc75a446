package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/graph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	b := dsl.New(domain.PathMetadata{})
	b.Add(1).Lesson("a", `Say "hi"`).Go(2)
	b.Add(2).Question("q", "Pick", "yes", "no").Branch(0, 3).BranchEnd(1)
	b.Add(3).Lesson("c", "C")
	g, _, err := pathgraph.FromPath(b.MustBuild(1))
	require.NoError(t, err)
	require.NoError(t, g.Insert(domain.Branch(domain.PersistedKey(2), 0), 0, &domain.DraftNode{
		Seq:      0,
		NodeData: domain.NodeData{Content: domain.LocalRef("d"), DisplayTitle: "D", ContentKind: domain.ContentKindLearningObject},
	}))

	out, err := graph.GenerateMermaid(g, &graph.GraphOverlay{Highlight: domain.PersistedKey(2)})
	require.NoError(t, err)

	for _, want := range []string{
		"graph TD",
		`p_1(("Say 'hi'"))`,
		"p_1 --> p_2",
		`p_2{"Pick"}`,
		`p_2 -- "yes" --> p_3`,
		`p_2_end_1(["end"])`,
		`p_2 -- "no" --> p_2_end_1`,
		"p_3 --> d_0",
		"class d_0 draft;",
		"class p_2 current;",
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateMermaid_EmptyPath(t *testing.T) {
	out, err := graph.GenerateMermaid(pathgraph.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, "graph TD", strings.TrimSpace(out))
}
