package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/internal/presentation/tui"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
)

func TestOutline(t *testing.T) {
	meta := domain.PathMetadata{Title: "AI", Description: "Intro", Language: "en"}
	b := dsl.New(meta)
	b.Add(1).Lesson("lo-1", "Intro").Go(2)
	b.Add(2).Question("mc-1", "Pick", "x", "y").Branch(0, 3).BranchEnd(1)
	b.Add(3).Lesson("lo-3", "Deeper")
	g, _, err := pathgraph.FromPath(b.MustBuild(1))
	require.NoError(t, err)

	out, err := tui.Outline(meta, g)
	require.NoError(t, err)

	want := "# AI\n\nIntro\n\n_Language: en_\n\n" +
		"1. **Intro** `local:lo-1`\n" +
		"2. **Pick** `local:mc-1`\n" +
		"   - _x_\n" +
		"    1. **Deeper** `local:lo-3`\n" +
		"   - _y_\n" +
		"     - end of path\n"
	assert.Equal(t, want, out)
}

func TestOutline_Empty(t *testing.T) {
	out, err := tui.Outline(domain.PathMetadata{}, pathgraph.New())
	require.NoError(t, err)
	assert.Contains(t, out, "# -")
	assert.Contains(t, out, "no nodes yet")
}
