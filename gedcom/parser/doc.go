// Package parser turns GEDCOM text into a forest of gedcom.Node record
// trees: a line lexer (ParseRawLine) followed by a level-transition state
// machine (BuildForest) that assembles the flat line list into trees.
// Neither stage ever aborts on a malformed line; both append to the caller's
// *gedcom.ErrorLog and keep going, per spec §7's propagation policy.
package parser
