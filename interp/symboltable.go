package interp

// SymbolTable holds the values of a routine's local variables, or (for the
// global table) the script's top-level variables. Grounded on
// DeadEndsLib/Interp/symboltable.c's hash-table-backed implementation; Go's
// builtin map is the natural replacement for the hand-rolled HashTable.
type SymbolTable struct {
	values map[string]PValue
}

// NewSymbolTable creates an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{values: make(map[string]PValue)}
}

// Get returns the value bound to ident and whether it was found.
func (t *SymbolTable) Get(ident string) (PValue, bool) {
	v, ok := t.values[ident]
	return v, ok
}

// Set binds ident to value, overwriting any existing binding.
func (t *SymbolTable) Set(ident string, value PValue) {
	t.values[ident] = value
}

// Has reports whether ident is bound in this table.
func (t *SymbolTable) Has(ident string) bool {
	_, ok := t.values[ident]
	return ok
}
