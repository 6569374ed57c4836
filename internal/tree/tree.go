package tree

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Node is a file (no children) or a directory.
type Node struct {
	Name     string
	Children []*Node
	dir      bool
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.dir }

// Filter decides whether entry is kept. ancestors holds the names of the
// directories between the root and entry, empty at the root level.
type Filter func(ancestors []string, entry fs.DirEntry) bool

// All keeps every entry.
func All([]string, fs.DirEntry) bool { return true }

// Build snapshots root, keeping regular files and directories accepted by
// filter. Directories left without children are pruned. Symlinks and special
// files are skipped.
func Build(root string, filter Filter) (*Node, error) {
	if filter == nil {
		filter = All
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	n := &Node{Name: filepath.Base(root), dir: true}
	if err := build(n, root, nil, filter); err != nil {
		return nil, err
	}
	return n, nil
}

func build(parent *Node, dir string, ancestors []string, filter Filter) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !filter(ancestors, entry) {
			continue
		}

		switch {
		case entry.IsDir():
			child := &Node{Name: entry.Name(), dir: true}
			next := append(append([]string{}, ancestors...), entry.Name())
			if err := build(child, filepath.Join(dir, entry.Name()), next, filter); err != nil {
				return err
			}
			if len(child.Children) > 0 {
				parent.Children = append(parent.Children, child)
			}
		case entry.Type().IsRegular():
			parent.Children = append(parent.Children, &Node{Name: entry.Name()})
		}
	}
	return nil
}

// Walk visits every descendant of n depth-first, directories before their
// children. rel is the slash-separated path relative to n.
func (n *Node) Walk(fn func(rel string, node *Node) error) error {
	return walk(n, "", fn)
}

func walk(n *Node, prefix string, fn func(string, *Node) error) error {
	for _, c := range n.Children {
		rel := path.Join(prefix, c.Name)
		if err := fn(rel, c); err != nil {
			return err
		}
		if c.dir {
			if err := walk(c, rel, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of files and directories below n.
func (n *Node) Count() (files, dirs int) {
	_ = n.Walk(func(_ string, c *Node) error {
		if c.dir {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return files, dirs
}

// Render writes an indented listing of n. Directory names end with a slash.
func (n *Node) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, label(n)); err != nil {
		return err
	}
	return render(w, n, "")
}

func render(w io.Writer, n *Node, indent string) error {
	for i, c := range n.Children {
		branch, next := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, next = "└── ", "    "
		}
		if _, err := fmt.Fprintln(w, indent+branch+label(c)); err != nil {
			return err
		}
		if c.dir {
			if err := render(w, c, indent+next); err != nil {
				return err
			}
		}
	}
	return nil
}

func label(n *Node) string {
	if n.dir {
		return n.Name + "/"
	}
	return n.Name
}
