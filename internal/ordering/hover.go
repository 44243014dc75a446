package ordering

// ShouldCommitHover decides whether a dragged item hovering over another item swaps with it.
// Moving down commits only once the pointer passes the hovered item's vertical midpoint,
// moving up only once it is above it. This keeps the list from flickering.
func ShouldCommitHover(dragIndex, hoverIndex int, pointerY, hoverTop, hoverBottom float64) bool {
	if dragIndex == hoverIndex {
		return false
	}
	middle := hoverTop + (hoverBottom-hoverTop)/2
	if dragIndex < hoverIndex {
		return pointerY > middle
	}
	return pointerY < middle
}
