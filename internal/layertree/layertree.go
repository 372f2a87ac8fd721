// Package layertree provides pure traversal helpers over a component's layer tree.
// Only layers implementing core.Parent have children; every other variant is a leaf.
package layertree

import (
	"errors"

	"github.com/leapstack-labs/leapui/pkg/core"
)

// ErrStop can be returned from a WalkFunc to end the walk early without error.
var ErrStop = errors.New("stop walk")

// WalkFunc is called for each layer in preorder with its depth (root = 0)
// and its parent (nil for the root).
type WalkFunc func(layer core.Layer, parent core.Layer, depth int) error

// Walk visits root and its descendants depth-first, parents before children,
// in children order. Returning ErrStop ends the walk and Walk returns nil.
func Walk(root core.Layer, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, nil, 0, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(layer, parent core.Layer, depth int, fn WalkFunc) error {
	if err := fn(layer, parent, depth); err != nil {
		return err
	}
	for _, child := range Children(layer) {
		if err := walk(child, layer, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the children of a layer, or nil for leaf variants.
func Children(layer core.Layer) []core.Layer {
	if p, ok := layer.(core.Parent); ok {
		return p.ChildLayers()
	}
	return nil
}

// Flatten returns the tree in preorder: [root, child1, child1's children..., child2, ...].
func Flatten(root core.Layer) []core.Layer {
	var out []core.Layer
	_ = Walk(root, func(l core.Layer, _ core.Layer, _ int) error {
		out = append(out, l)
		return nil
	})
	return out
}

// FindByID returns the first layer in preorder whose ID matches, or nil.
func FindByID(root core.Layer, id string) core.Layer {
	var found core.Layer
	_ = Walk(root, func(l core.Layer, _ core.Layer, _ int) error {
		if l.Base().ID == id {
			found = l
			return ErrStop
		}
		return nil
	})
	return found
}

// FindByName returns the first layer in preorder whose display name matches, or nil.
func FindByName(root core.Layer, name string) core.Layer {
	var found core.Layer
	_ = Walk(root, func(l core.Layer, _ core.Layer, _ int) error {
		if l.Base().Name == name {
			found = l
			return ErrStop
		}
		return nil
	})
	return found
}

// Replace returns a new tree in which the layer whose ID equals updated's ID
// is replaced by updated. Every ancestor of the replaced layer is a new value;
// untouched subtrees are shared with the input. The input tree is never
// modified. If no layer matches, root is returned unchanged.
func Replace(root, updated core.Layer) core.Layer {
	if root == nil || updated == nil {
		return root
	}
	out, _ := replace(root, updated)
	return out
}

func replace(layer, updated core.Layer) (core.Layer, bool) {
	if layer.Base().ID == updated.Base().ID {
		return updated, true
	}
	p, ok := layer.(core.Parent)
	if !ok {
		return layer, false
	}
	children := p.ChildLayers()
	for i, child := range children {
		next, replaced := replace(child, updated)
		if !replaced {
			continue
		}
		newChildren := make([]core.Layer, len(children))
		copy(newChildren, children)
		newChildren[i] = next
		return p.WithChildren(newChildren), true
	}
	return layer, false
}

// ComponentRefs returns the component IDs referenced by component layers in
// the tree, in preorder, without duplicates.
func ComponentRefs(root core.Layer) []string {
	seen := make(map[string]struct{})
	var ids []string
	_ = Walk(root, func(l core.Layer, _ core.Layer, _ int) error {
		if cl, ok := l.(*core.ComponentLayer); ok {
			if _, dup := seen[cl.ComponentID]; !dup {
				seen[cl.ComponentID] = struct{}{}
				ids = append(ids, cl.ComponentID)
			}
		}
		return nil
	})
	return ids
}

// Count returns the number of layers in the tree.
func Count(root core.Layer) int {
	n := 0
	_ = Walk(root, func(core.Layer, core.Layer, int) error {
		n++
		return nil
	})
	return n
}
