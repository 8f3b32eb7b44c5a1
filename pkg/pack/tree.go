// File: pkg/pack/tree.go
package pack

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// treeNode is a directory in the rendered tree. Files have no children.
type treeNode struct {
	name     string
	children map[string]*treeNode
	isDir    bool
}

// RenderTree draws the relative paths as an indented tree under root.
// Directories come first, then files, each group sorted case-insensitively.
func RenderTree(root string, relPaths []string) string {
	top := &treeNode{children: map[string]*treeNode{}, isDir: true}
	for _, rel := range relPaths {
		parts := strings.Split(filepath.ToSlash(rel), "/")
		node := top
		for i, part := range parts {
			if part == "" {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			if i < len(parts)-1 {
				child.isDir = true
			}
			node = child
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s/\n", strings.TrimRight(filepath.ToSlash(root), "/"))
	renderChildren(&b, top, "")
	return b.String()
}

func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir {
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, entry.name)
			renderChildren(b, entry, prefix+extension)
			continue
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, entry.name)
	}
}
