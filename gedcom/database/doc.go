// Package database holds the in-RAM indexes that back a loaded GEDCOM file:
// a primary key index, the sorted person and family root lists, the
// phonetic name index, and the user-reference (REFN) index. Database ties
// them together and drives the load pipeline from raw file to validated,
// indexed record set.
package database
