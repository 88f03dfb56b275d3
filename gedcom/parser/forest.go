package parser

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
)

// forestState is the level-transition state machine of spec §4.2.
type forestState int

const (
	stateInitial forestState = iota
	stateMain
	stateError
)

// BuildForest assembles a flat list of lexed Lines into a forest of record
// roots, following the state machine in spec §4.2. Errors are appended to
// log; the builder never stops early — it recovers at the next level-0 line
// and keeps going. The second return value gives the 1-based line number
// each root's level-0 line was read from, for callers (Database.StoreRecord)
// that need to report a duplicate key's first and second locations.
func BuildForest(lines []Line, filename string, log *gedcom.ErrorLog) ([]*gedcom.Node, []int) {
	var roots []*gedcom.Node
	var rootLines []int
	state := stateInitial
	var rootNode, curNode, prevNode *gedcom.Node
	var rootLineNo int
	var curLevel, prevLevel int

	for _, line := range lines {
		prevNode = curNode
		curNode = gedcom.NewNode(line.Key, line.Tag, line.Value)
		prevLevel = curLevel
		curLevel = line.Level

		switch state {
		case stateInitial:
			if curLevel == 0 {
				rootNode = curNode
				rootLineNo = line.LineNo
				state = stateMain
				continue
			}
			log.Add(gedcom.ErrorSyntax, gedcom.SeverityWarning, filename, line.LineNo, "illegal line level")
			state = stateError

		case stateMain:
			switch {
			case curLevel == 0:
				roots = append(roots, rootNode)
				rootLines = append(rootLines, rootLineNo)
				rootNode = curNode
				rootLineNo = line.LineNo
			case curLevel == prevLevel:
				curNode.Parent = prevNode.Parent
				prevNode.Sibling = curNode
			case curLevel == prevLevel+1:
				curNode.Parent = prevNode
				prevNode.Child = curNode
			case curLevel < prevLevel:
				ancestor := prevNode
				depth := prevLevel
				for curLevel < depth {
					if ancestor.Parent == nil {
						// Acyclicity invariant (spec §9): a tree this shallow
						// cannot have more ancestors than its own depth, so
						// this would only happen on a malformed level
						// sequence we should have already rejected.
						panic("parser: forest builder walked past the tree root")
					}
					ancestor = ancestor.Parent
					depth--
				}
				curNode.Parent = ancestor.Parent
				ancestor.Sibling = curNode
			default: // curLevel > prevLevel+1
				log.Add(gedcom.ErrorSyntax, gedcom.SeverityWarning, filename, line.LineNo, "illegal level number")
				roots = append(roots, rootNode)
				rootLines = append(rootLines, rootLineNo)
				state = stateError
			}

		case stateError:
			if curLevel != 0 {
				continue
			}
			rootNode = curNode
			rootLineNo = line.LineNo
			state = stateMain
		}
	}
	if state == stateMain {
		roots = append(roots, rootNode)
		rootLines = append(rootLines, rootLineNo)
	}
	return roots, rootLines
}
