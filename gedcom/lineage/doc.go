// Package lineage provides genealogical navigation (father, mother,
// siblings, spouses, children) and the Sequence type with its set-algebraic
// closure operations (union, intersect, difference, ancestors, descendants,
// children, spouses, siblings), per spec §4.9 and §4.10. Every function that
// crosses a record reference resolves it through a database.Database's
// record index rather than following a direct pointer, since the record
// tree itself never holds one (spec §3 "cross-record refs only via
// textual key lookup").
package lineage
