package gedcom

// PersonParts is the result of SplitPerson: six ordered lists preserving the
// original relative order of nodes within each group (spec §4.4).
type PersonParts struct {
	Names []*Node
	Refns []*Node
	Sex   *Node // at most one SEX line is recognized
	Body  []*Node
	Famcs []*Node
	Fams  []*Node
}

// FamilyParts is the result of SplitFamily.
type FamilyParts struct {
	Refns []*Node
	Husbs []*Node
	Wifes []*Node
	Chils []*Node
	Rest  []*Node
}

// OtherParts is the result of splitting a source/event/"other" record: just
// its REFN list and everything else, in original order (splitjoin.c's
// normalizeEvent/normalizeSource/normalizeOther are no-ops beyond this
// REFN/rest partition — see SPEC_FULL.md §3).
type OtherParts struct {
	Refns []*Node
	Rest  []*Node
}

// detachChildren removes and returns root's children as a slice, clearing
// each child's Sibling link and leaving root childless. Parent links on the
// returned nodes are left as they are; the caller's later join resets them.
func detachChildren(root *Node) []*Node {
	var out []*Node
	for c := root.Child; c != nil; {
		next := c.Sibling
		c.Sibling = nil
		out = append(out, c)
		c = next
	}
	root.Child = nil
	return out
}

// chain links a slice of nodes into a sibling chain and reparents each to
// parent, returning the head (or nil for an empty slice).
func chain(parent *Node, nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	for i, n := range nodes {
		n.Parent = parent
		if i+1 < len(nodes) {
			n.Sibling = nodes[i+1]
		} else {
			n.Sibling = nil
		}
	}
	return nodes[0]
}

// appendChain appends a chain built from nodes after tail (which may be nil,
// meaning "this is the first group"); returns the new tail, or tail
// unchanged if nodes is empty.
func appendChain(parent *Node, tail *Node, nodes []*Node) *Node {
	head := chain(parent, nodes)
	if head == nil {
		return tail
	}
	if tail == nil {
		parent.Child = head
	} else {
		tail.Sibling = head
	}
	newTail := head
	for newTail.Sibling != nil {
		newTail = newTail.Sibling
	}
	return newTail
}

// SplitPerson partitions a person record's children into the six canonical
// groups (spec §4.4), preserving original relative order within each group.
// The record's child list is emptied as a side effect; JoinPerson puts it
// back together.
func SplitPerson(root *Node) *PersonParts {
	parts := &PersonParts{}
	for _, n := range detachChildren(root) {
		switch {
		case n.Tag == "NAME":
			parts.Names = append(parts.Names, n)
		case n.Tag == "SEX" && parts.Sex == nil:
			parts.Sex = n
		case n.Tag == "FAMC":
			parts.Famcs = append(parts.Famcs, n)
		case n.Tag == "FAMS":
			parts.Fams = append(parts.Fams, n)
		case n.Tag == "REFN":
			parts.Refns = append(parts.Refns, n)
		default:
			parts.Body = append(parts.Body, n)
		}
	}
	return parts
}

// JoinPerson re-links a person record's children in canonical order:
// NAME*, REFN*, SEX?, body*, FAMC*, FAMS*.
func JoinPerson(root *Node, parts *PersonParts) {
	root.Child = nil
	tail := appendChain(root, nil, parts.Names)
	tail = appendChain(root, tail, parts.Refns)
	if parts.Sex != nil {
		tail = appendChain(root, tail, []*Node{parts.Sex})
	}
	tail = appendChain(root, tail, parts.Body)
	tail = appendChain(root, tail, parts.Famcs)
	appendChain(root, tail, parts.Fams)
}

// NormalizePerson puts a person record into canonical form. Split followed
// immediately by Join is idempotent (spec §8): a second round-trip produces
// an identical tree.
func NormalizePerson(root *Node) *Node {
	JoinPerson(root, SplitPerson(root))
	return root
}

// SplitFamily partitions a family record's children into the five canonical
// groups: REFN*, HUSB*, WIFE*, CHIL*, rest*.
func SplitFamily(root *Node) *FamilyParts {
	parts := &FamilyParts{}
	for _, n := range detachChildren(root) {
		switch n.Tag {
		case "REFN":
			parts.Refns = append(parts.Refns, n)
		case "HUSB":
			parts.Husbs = append(parts.Husbs, n)
		case "WIFE":
			parts.Wifes = append(parts.Wifes, n)
		case "CHIL":
			parts.Chils = append(parts.Chils, n)
		default:
			parts.Rest = append(parts.Rest, n)
		}
	}
	return parts
}

// JoinFamily re-links a family record's children in canonical order:
// REFN*, HUSB*, WIFE*, CHIL*, rest*.
func JoinFamily(root *Node, parts *FamilyParts) {
	root.Child = nil
	tail := appendChain(root, nil, parts.Refns)
	tail = appendChain(root, tail, parts.Husbs)
	tail = appendChain(root, tail, parts.Wifes)
	tail = appendChain(root, tail, parts.Chils)
	appendChain(root, tail, parts.Rest)
}

// NormalizeFamily puts a family record into canonical form.
func NormalizeFamily(root *Node) *Node {
	JoinFamily(root, SplitFamily(root))
	return root
}

// SplitOther partitions a source/event/header/trailer/"other" record's
// children into its REFN list and everything else, in original order.
func SplitOther(root *Node) *OtherParts {
	parts := &OtherParts{}
	for _, n := range detachChildren(root) {
		if n.Tag == "REFN" {
			parts.Refns = append(parts.Refns, n)
		} else {
			parts.Rest = append(parts.Rest, n)
		}
	}
	return parts
}

// JoinOther re-links a source/event/"other" record's children as REFN*
// followed by rest*.
func JoinOther(root *Node, parts *OtherParts) {
	root.Child = nil
	tail := appendChain(root, nil, parts.Refns)
	appendChain(root, tail, parts.Rest)
}

// NormalizeOther puts a source/event/header/trailer/"other" record into
// canonical form.
func NormalizeOther(root *Node) *Node {
	JoinOther(root, SplitOther(root))
	return root
}

// NormalizeRecord dispatches to the correct split/join pair based on the
// record's kind, implementing the contract-bearing "normalize" operation of
// spec §4.4 for every record kind.
func NormalizeRecord(root *Node) *Node {
	switch KindOf(root) {
	case KindPerson:
		return NormalizePerson(root)
	case KindFamily:
		return NormalizeFamily(root)
	default:
		return NormalizeOther(root)
	}
}

// insertAt returns a copy of nodes with extra inserted at index (clamped to
// [0, len(nodes)] — a negative or out-of-range index appends, per spec
// §4.4's add-child-to-family contract).
func insertAt(nodes []*Node, index int, extra *Node) []*Node {
	if index < 0 || index > len(nodes) {
		index = len(nodes)
	}
	out := make([]*Node, 0, len(nodes)+1)
	out = append(out, nodes[:index]...)
	out = append(out, extra)
	out = append(out, nodes[index:]...)
	return out
}

// AddChildToFamily implements spec §4.4's add-child-to-family contract: a
// fresh CHIL node (value childKey) is inserted into the family's CHIL list
// at index (appending if index is negative or beyond the list length), and
// a fresh FAMC node (value familyKey) is appended to the child's FAMC list.
// Both records are split, mutated, and rejoined as required by the
// split/mutate/join discipline (spec §9 "Sibling-list edits").
func AddChildToFamily(family, child *Node, index int) {
	famParts := SplitFamily(family)
	chilNode := NewNode("", "CHIL", child.Key)
	famParts.Chils = insertAt(famParts.Chils, index, chilNode)
	JoinFamily(family, famParts)

	perParts := SplitPerson(child)
	famcNode := NewNode("", "FAMC", family.Key)
	perParts.Famcs = append(perParts.Famcs, famcNode)
	JoinPerson(child, perParts)
}

// RemoveChildFromFamily implements spec §4.4's remove-child-from-family
// contract. If either the CHIL link in family or the matching FAMC link in
// child is missing, a linkage error is logged and neither record is
// changed.
func RemoveChildFromFamily(family, child *Node, log *ErrorLog) {
	famParts := SplitFamily(family)
	chilIdx := -1
	for i, c := range famParts.Chils {
		if c.Value == child.Key {
			chilIdx = i
			break
		}
	}
	perParts := SplitPerson(child)
	famcIdx := -1
	for i, f := range perParts.Famcs {
		if f.Value == family.Key {
			famcIdx = i
			break
		}
	}
	if chilIdx < 0 || famcIdx < 0 {
		if log != nil {
			log.Add(ErrorLinkage, SeverityWarning, "", 0,
				"cannot remove child "+child.Key+" from family "+family.Key+": link not found")
		}
		// Leave both records unchanged: rejoin from the unmodified split parts.
		JoinFamily(family, famParts)
		JoinPerson(child, perParts)
		return
	}
	famParts.Chils = append(famParts.Chils[:chilIdx], famParts.Chils[chilIdx+1:]...)
	perParts.Famcs = append(perParts.Famcs[:famcIdx], perParts.Famcs[famcIdx+1:]...)
	JoinFamily(family, famParts)
	JoinPerson(child, perParts)
}

// AddSpouseToFamily implements spec §4.4's add-spouse contract: the spouse
// is linked as HUSB or WIFE depending on its sex (which must be definite),
// and a fresh FAMS node is appended to the spouse's FAMS list.
func AddSpouseToFamily(family, spouse *Node) bool {
	sex := PersonSex(spouse)
	if !sex.IsDefinite() {
		return false
	}
	famParts := SplitFamily(family)
	if sex == SexMale {
		famParts.Husbs = append(famParts.Husbs, NewNode("", "HUSB", spouse.Key))
	} else {
		famParts.Wifes = append(famParts.Wifes, NewNode("", "WIFE", spouse.Key))
	}
	JoinFamily(family, famParts)

	perParts := SplitPerson(spouse)
	perParts.Fams = append(perParts.Fams, NewNode("", "FAMS", family.Key))
	JoinPerson(spouse, perParts)
	return true
}

// RemoveSpouseFromFamily implements spec §4.4's remove-spouse contract,
// symmetric with RemoveChildFromFamily.
func RemoveSpouseFromFamily(family, spouse *Node, log *ErrorLog) {
	sex := PersonSex(spouse)
	famParts := SplitFamily(family)
	perParts := SplitPerson(spouse)

	var list *[]*Node
	if sex == SexMale {
		list = &famParts.Husbs
	} else {
		list = &famParts.Wifes
	}
	spouseIdx := -1
	for i, s := range *list {
		if s.Value == spouse.Key {
			spouseIdx = i
			break
		}
	}
	famsIdx := -1
	for i, f := range perParts.Fams {
		if f.Value == family.Key {
			famsIdx = i
			break
		}
	}
	if spouseIdx < 0 || famsIdx < 0 {
		if log != nil {
			log.Add(ErrorLinkage, SeverityWarning, "", 0,
				"cannot remove spouse "+spouse.Key+" from family "+family.Key+": link not found")
		}
		JoinFamily(family, famParts)
		JoinPerson(spouse, perParts)
		return
	}
	*list = append((*list)[:spouseIdx], (*list)[spouseIdx+1:]...)
	perParts.Fams = append(perParts.Fams[:famsIdx], perParts.Fams[famsIdx+1:]...)
	JoinFamily(family, famParts)
	JoinPerson(spouse, perParts)
}
