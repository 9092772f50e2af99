/*
Package clicktree renders a flat, ordered sequence of leveled items as a nested,
collapsible list and reports the selected item back to a host application.

The host sends an ordered list of {id, name, level} records. The component rebuilds
the implied tree in a single linear pass, restores which groups were collapsed, and
reports the frame height. When the user activates a leaf label, the component
reports the original item together with the current collapse state, which the host
echoes back on the next render so the state survives re-renders.

# Usage

	comp := clicktree.New(clicktree.WithHost(host))
	if err := comp.Ready(ctx); err != nil {
		log.Fatal(err)
	}

	tree, err := comp.Render(ctx, &domain.RenderConfig{
		Options: []domain.Item{
			{ID: "p", Name: "Parent", Level: 0},
			{ID: "c", Name: "Child", Level: 1},
		},
		Indent: 10,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Toggle the parent's collapse marker; no re-render happens.
	collapsed, _ := comp.Toggle(ctx, tree.Root.Children[0].Key)

	// Activate the child label; the host receives the selection.
	sel, _ := comp.Select(ctx, 1)

The component is not safe for concurrent use. Adapters that serve several hosts
(see pkg/session) hold one component per session and serialize access to it.
*/
package clicktree
