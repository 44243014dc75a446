package tui

import (
	"fmt"
	"strings"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// Outline renders the path as a nested markdown list, one indentation level per branch.
func Outline(meta domain.PathMetadata, g *pathgraph.Graph) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", orDash(meta.Title))
	if meta.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", meta.Description)
	}
	if meta.Language != "" {
		fmt.Fprintf(&sb, "_Language: %s_\n\n", meta.Language)
	}
	if g.Len() == 0 {
		sb.WriteString("_This path has no nodes yet._\n")
		return sb.String(), nil
	}
	if err := outlineSequence(&sb, g, domain.Root, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func outlineSequence(sb *strings.Builder, g *pathgraph.Graph, bc domain.BranchContext, depth int) error {
	if depth > 2*g.Len() {
		return domain.Invariant("Outline", domain.ErrCorruptPath, "branch nesting deeper than the number of nodes")
	}
	indent := strings.Repeat("  ", depth)
	for i, n := range g.SequenceFor(bc) {
		marker := ""
		if domain.IsDraft(n) {
			marker = " *(new)*"
		}
		fmt.Fprintf(sb, "%s%d. **%s** `%s`%s\n", indent, i+1, orDash(n.Title()), n.ContentRef(), marker)

		if !domain.IsDecision(n) {
			continue
		}
		for opt, label := range n.Options() {
			fmt.Fprintf(sb, "%s   - _%s_\n", indent, label)
			child := domain.Branch(n.Key(), opt)
			if len(g.SequenceFor(child)) == 0 {
				fmt.Fprintf(sb, "%s     - end of path\n", indent)
				continue
			}
			if err := outlineSequence(sb, g, child, depth+2); err != nil {
				return err
			}
		}
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
