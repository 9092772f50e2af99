package builder

import "github.com/aretw0/clicktree/pkg/domain"

// ancestors is the pass-scoped stack of open containers, root first.
// For well-formed input len(containers) == level+1 after every transition.
type ancestors struct {
	containers []*domain.Node
	level      int
}

func newAncestors(root *domain.Node) *ancestors {
	return &ancestors{containers: []*domain.Node{root}}
}

func (a *ancestors) top() *domain.Node {
	return a.containers[len(a.containers)-1]
}

func (a *ancestors) depth() int {
	return len(a.containers)
}

// adjust corrects the stack before the item at newLevel is attached.
func (a *ancestors) adjust(newLevel int) {
	switch {
	case newLevel > a.level:
		// The group created for the parent item is the next attachment point.
		// Leaves never become containers.
		if last := a.top().LastChild(); last != nil && last.IsGroup() {
			a.containers = append(a.containers, last)
		}
	case newLevel < a.level:
		for lvl := a.level; lvl > newLevel && len(a.containers) > 1; lvl-- {
			a.containers = a.containers[:len(a.containers)-1]
		}
	default:
		return
	}
	a.level = newLevel
}

// attach appends n as the last child of the current container.
func (a *ancestors) attach(n *domain.Node) {
	top := a.top()
	top.Children = append(top.Children, n)
}

// settle records the level expectation after n (created for an item at
// itemLevel) was attached.
func (a *ancestors) settle(n *domain.Node, itemLevel int) {
	if n.IsGroup() {
		a.containers = append(a.containers, n)
		a.level = itemLevel + 1
		return
	}
	a.level = itemLevel
}
