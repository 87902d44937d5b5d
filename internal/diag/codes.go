package diag

import "fmt"

// Code identifies a diagnostic across phases. Ranges are reserved per phase
// so new codes slot in without renumbering.
type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdent       Code = 2004
	SynMacroBody         Code = 2005

	// expansion
	ExpInfo         Code = 3000
	ExpUnknownMacro Code = 3001
	ExpBadArgList   Code = 3002

	// semantic
	SemInfo            Code = 4000
	SemDuplicateFn     Code = 4001
	SemUnknownCall     Code = 4002
	SemDuplicateImport Code = 4003

	// lowering and backend
	LowInfo        Code = 5000
	LowNoMain      Code = 5001
	LowBadObject   Code = 5002
	LowWriteFailed Code = 5003

	// observability
	ObsTimings Code = 9000
)

func (c Code) String() string {
	return fmt.Sprintf("F%04d", uint16(c))
}
