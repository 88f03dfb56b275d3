// Package validator runs the sequential structural checks of spec §4.8
// over a loaded database: key/reference integrity, person and family
// back-link consistency, and REFN uniqueness. Every check failure is
// appended to the caller's ErrorLog; validation never stops early, so a
// single run reports the complete error set.
package validator
