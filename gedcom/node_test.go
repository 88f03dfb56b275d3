package gedcom

import "testing"

func buildSampleTree() *Node {
	root := NewNode("@I1@", "INDI", "")
	name := NewNode("", "NAME", "John /Smith/")
	sex := NewNode("", "SEX", "M")
	famc := NewNode("", "FAMC", "@F1@")
	root.AddChild(name)
	root.AddChild(sex)
	root.AddChild(famc)
	return root
}

func TestAddChildAndChildren(t *testing.T) {
	root := buildSampleTree()
	children := root.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[0].Tag != "NAME" || children[1].Tag != "SEX" || children[2].Tag != "FAMC" {
		t.Fatalf("children out of order: %v", children)
	}
}

func TestFirstChildWithTag(t *testing.T) {
	root := buildSampleTree()
	if got := root.FirstChildWithTag("SEX"); got == nil || got.Value != "M" {
		t.Fatalf("FirstChildWithTag(SEX) = %v, want SEX/M", got)
	}
	if got := root.FirstChildWithTag("MISSING"); got != nil {
		t.Fatalf("FirstChildWithTag(MISSING) = %v, want nil", got)
	}
}

func TestCopyIsDeepAndDetached(t *testing.T) {
	root := buildSampleTree()
	clone := Copy(root)
	if clone == root {
		t.Fatalf("Copy returned the same node")
	}
	if clone.Parent != nil {
		t.Fatalf("Copy root should be detached, got parent %v", clone.Parent)
	}
	clone.Child.Value = "Jane /Smith/"
	if root.Child.Value != "John /Smith/" {
		t.Fatalf("mutating the copy mutated the original: %q", root.Child.Value)
	}
}

func TestTraversePreOrder(t *testing.T) {
	root := buildSampleTree()
	var tags []string
	Traverse(root, func(n *Node) bool {
		tags = append(tags, n.Tag)
		return true
	})
	want := []string{"INDI", "NAME", "SEX", "FAMC"}
	if len(tags) != len(want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("got %v, want %v", tags, want)
		}
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	root := buildSampleTree()
	count := 0
	Traverse(root, func(n *Node) bool {
		count++
		return n.Tag != "SEX"
	})
	if count != 3 {
		t.Fatalf("expected traversal to stop after SEX (3 nodes), got %d", count)
	}
}

func TestCountBefore(t *testing.T) {
	root := buildSampleTree()
	sex := root.FirstChildWithTag("SEX")
	if got := CountBefore(root, sex); got != 2 {
		t.Fatalf("CountBefore(root, sex) = %d, want 2", got)
	}
	if got := CountBefore(root, root); got != 0 {
		t.Fatalf("CountBefore(root, root) = %d, want 0", got)
	}
	stray := NewNode("", "NOTE", "not in tree")
	if got := CountBefore(root, stray); got != -1 {
		t.Fatalf("CountBefore(root, stray) = %d, want -1", got)
	}
}

func TestDepth(t *testing.T) {
	root := buildSampleTree()
	if Depth(root) != 0 {
		t.Fatalf("Depth(root) = %d, want 0", Depth(root))
	}
	if Depth(root.Child) != 1 {
		t.Fatalf("Depth(root.Child) = %d, want 1", Depth(root.Child))
	}
}
