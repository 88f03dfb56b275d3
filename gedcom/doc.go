// Package gedcom implements the core record model of the DeadEnds genealogical
// engine: the hierarchical GEDCOM node tree, the process-wide tag pool, record
// kind classification, and the split/join canonicalizers for person and family
// records.
//
// A GEDCOM record is a tree of Nodes rooted at a level-0 node. Nodes are owned
// exclusively by the tree they belong to; cross-record relationships are never
// represented as direct pointers, only as textual keys resolved through a
// database's record index (see the database package). This keeps the node
// tree a strict tree with no back-edges, matching the acyclicity the lineage
// and sequence algorithms rely on.
package gedcom
