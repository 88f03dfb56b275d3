package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/parser"
)

// Database is the in-RAM index set for one loaded Gedcom file: a primary
// key index, sorted person and family root lists, a phonetic name index,
// and a user-reference index.
type Database struct {
	FilePath string
	Name     string
	Header   *gedcom.Node

	Records     *RecordIndex
	PersonRoots *RootList
	FamilyRoots *RootList
	NameIndex   *NameIndex
	RefnIndex   *RefnIndex
}

// NewDatabase creates an empty Database for the given source file path.
func NewDatabase(filePath string) *Database {
	return &Database{
		FilePath:    filePath,
		Name:        filepath.Base(filePath),
		Records:     NewRecordIndex(),
		PersonRoots: NewRootList(),
		FamilyRoots: NewRootList(),
		NameIndex:   NewNameIndex(),
		RefnIndex:   NewRefnIndex(),
	}
}

// StoreRecord normalizes and indexes one parsed record root. Non-key
// record kinds other than Header/Trailer are rejected (spec §4.3); the
// header record itself is kept aside rather than indexed by key. Returns
// false if the record was rejected or duplicate.
func (db *Database) StoreRecord(root *gedcom.Node, lineNo int, log *gedcom.ErrorLog) bool {
	kind := gedcom.KindOf(root)
	root = gedcom.NormalizeRecord(root)

	if kind == gedcom.KindHeader {
		db.Header = root
		return true
	}
	if kind == gedcom.KindTrailer {
		return true
	}
	if root.Key == "" {
		log.Add(gedcom.ErrorGedcom, gedcom.SeveritySevere, db.FilePath, lineNo,
			fmt.Sprintf("%s record is missing a key", root.Tag))
		return false
	}
	if !db.Records.Insert(root.Key, root, lineNo, log, db.FilePath) {
		return false
	}
	switch kind {
	case gedcom.KindPerson:
		db.PersonRoots.Insert(root)
	case gedcom.KindFamily:
		db.FamilyRoots.Insert(root)
	}
	return true
}

// IndexNames builds the name index by scanning every person root's NAME
// children (spec §4.6). Call once after every record has been stored.
func (db *Database) IndexNames() {
	for _, person := range db.PersonRoots.Roots() {
		for _, name := range person.ChildrenWithTag("NAME") {
			if name.Value == "" {
				continue
			}
			db.NameIndex.InsertName(name.Value, person.Key)
		}
	}
}

// IndexRefns scans every indexed record's REFN children, in short-before-
// long key order, and adds them to the reference index, logging a
// gedcom/warning error for any value that is empty or collides with one
// already indexed (spec §4.9's REFN validation). When two records share a
// REFN value, the record with the lower key keeps it.
func (db *Database) IndexRefns(log *gedcom.ErrorLog) {
	roots := db.Records.Roots()
	sort.Slice(roots, func(i, j int) bool { return keyLess(roots[i].Key, roots[j].Key) })
	for _, root := range roots {
		key := root.Key
		for _, refn := range root.ChildrenWithTag("REFN") {
			if refn.Value == "" {
				log.Add(gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath, 0,
					fmt.Sprintf("%s has an empty REFN value", key))
				continue
			}
			if !db.RefnIndex.Add(refn.Value, key) {
				log.Add(gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath, 0,
					fmt.Sprintf("REFN value %q on %s duplicates an existing reference", refn.Value, key))
			}
		}
	}
}

// KeyToPerson returns the person record stored under key, or nil.
func (db *Database) KeyToPerson(key string) *gedcom.Node {
	return db.Records.GetOfKind(key, gedcom.KindPerson)
}

// KeyToFamily returns the family record stored under key, or nil.
func (db *Database) KeyToFamily(key string) *gedcom.Node {
	return db.Records.GetOfKind(key, gedcom.KindFamily)
}

// NumberPersons returns the number of person records in the database.
func (db *Database) NumberPersons() int { return db.Records.CountOfKind(gedcom.KindPerson) }

// NumberFamilies returns the number of family records in the database.
func (db *Database) NumberFamilies() int { return db.Records.CountOfKind(gedcom.KindFamily) }

// IsEmpty reports whether the database has no persons and no families.
func (db *Database) IsEmpty() bool {
	return db.NumberPersons()+db.NumberFamilies() == 0
}

// GeneratePersonKey mints a fresh, collision-free person key.
func (db *Database) GeneratePersonKey() (string, error) {
	return gedcom.GenerateKey(gedcom.KindPerson, db.Records.Has)
}

// GenerateFamilyKey mints a fresh, collision-free family key.
func (db *Database) GenerateFamilyKey() (string, error) {
	return gedcom.GenerateKey(gedcom.KindFamily, db.Records.Has)
}

// LoadFile runs the full load pipeline (spec §6): lex, build the record
// forest, normalize and store every record, then build the name and
// reference indexes. It never aborts on a malformed line or record; all
// problems are appended to the returned ErrorLog, and the caller decides
// whether log.HasFatal() or log.HasSevereOrWorse() means the database
// should be discarded (spec §7).
func LoadFile(path string) (*Database, *gedcom.ErrorLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	log := gedcom.NewErrorLog()
	var lexErrs []*parser.LexError
	lines := parser.ReadLines(parser.NewReaderSource(file), &lexErrs)
	for _, lexErr := range lexErrs {
		log.Add(gedcom.ErrorSyntax, gedcom.SeverityFatal, path, lexErr.LineNo, lexErr.Message)
	}

	roots, rootLines := parser.BuildForest(lines, path, log)

	db := NewDatabase(path)
	for i, root := range roots {
		db.StoreRecord(root, rootLines[i], log)
	}
	db.IndexNames()
	db.IndexRefns(log)

	return db, log, nil
}
