package service

import (
	"sort"

	"backoffice/internal/model"

	"github.com/google/uuid"
)

// CategoryNode is a Category with its resolved children. The forest is
// rebuilt from the flat list on every read and never persisted.
type CategoryNode struct {
	model.Category
	Children []*CategoryNode
}

// BuildTree assembles the forest from a flat category list.
//
// Two passes: first every category is wrapped in a node and indexed by id,
// then each node is attached to its parent's children. A category whose
// parent_id is nil — or points at an id absent from the input — lands at the
// top level. The dangling case is deliberate tolerance, not an error: list
// reads may be filtered, so a missing parent means a partial view.
//
// Every level is sorted by sort_order ascending, ties broken by name, so the
// tree view and the flat list agree on ordering.
func BuildTree(categories []model.Category) []*CategoryNode {
	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &CategoryNode{Category: categories[i]}
	}

	roots := make([]*CategoryNode, 0)
	for i := range categories {
		n := nodes[categories[i].ID]
		if pid := categories[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(forest []*CategoryNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Children)
	}
	return n
}
