package graph

import (
	"fmt"
	"strings"

	"github.com/SELab-2/Dwengo-4-sub000/internal/pathgraph"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	// Highlight is the node the user is inspecting, e.g. the decision whose branches are open.
	Highlight domain.NodeKey
}

// GenerateMermaid produces a Mermaid flowchart of the edited path.
// It applies semantic styling:
// - Start: ((Circle))
// - Decision: {Rhombus}, one labeled edge per answer option
// - Default: [Rectangle]
// Draft nodes get the "draft" class; an option without nodes ends in an "end" terminal.
func GenerateMermaid(g *pathgraph.Graph, overlay *GraphOverlay) (string, error) {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var drafts []string
	start := g.SequenceFor(domain.Root)
	err := g.Walk(func(bc domain.BranchContext, seq domain.Sequence) error {
		for i, n := range seq {
			id := mermaidID(n.Key())
			opener, closer := "[", "]"
			switch {
			case domain.IsDecision(n):
				opener, closer = "{", "}"
			case len(start) > 0 && n.Key() == start[0].Key():
				opener, closer = "((", "))"
			}
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escape(n.Title()), closer)
			if domain.IsDraft(n) {
				drafts = append(drafts, id)
			}

			if i+1 < len(seq) {
				fmt.Fprintf(&sb, "    %s --> %s\n", id, mermaidID(seq[i+1].Key()))
			}
			if domain.IsDecision(n) {
				for opt, label := range n.Options() {
					branch := g.SequenceFor(domain.Branch(n.Key(), opt))
					target := fmt.Sprintf("%s_end_%d", id, opt)
					if len(branch) > 0 {
						target = mermaidID(branch[0].Key())
					} else {
						fmt.Fprintf(&sb, "    %s([\"end\"])\n", target)
					}
					fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", id, escape(label), target)
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(drafts) > 0 || (overlay != nil && !overlay.Highlight.IsZero()) {
		sb.WriteString("\n    %% Styles\n")
	}
	if len(drafts) > 0 {
		sb.WriteString("    classDef draft stroke-dasharray:5 5,stroke:#9e9e9e;\n")
		fmt.Fprintf(&sb, "    class %s draft;\n", strings.Join(drafts, ","))
	}
	if overlay != nil && !overlay.Highlight.IsZero() {
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(overlay.Highlight))
	}
	return sb.String(), nil
}

func mermaidID(k domain.NodeKey) string {
	return strings.ReplaceAll(k.String(), ":", "_")
}

// escape swaps double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
