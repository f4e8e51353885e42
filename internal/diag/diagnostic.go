package diag

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Subsystem partitions diagnostic codes as spec.md §6 specifies:
// general 1000+, lexer 2000+, parser 2100+, resolver 3000+, codegen 5000+.
type Subsystem int

const (
	SubsystemGeneral Subsystem = iota
	SubsystemLexer
	SubsystemParser
	SubsystemResolver
	SubsystemCodegen
)

// codeBase is the first code in each subsystem's range.
var codeBase = map[Subsystem]int{
	SubsystemGeneral:  1000,
	SubsystemLexer:    2000,
	SubsystemParser:   2100,
	SubsystemResolver: 3000,
	SubsystemCodegen:  5000,
}

// Code builds a subsystem-namespaced diagnostic code: Code(SubsystemParser, 12) == 2112.
func Code(sub Subsystem, offset int) int {
	return codeBase[sub] + offset
}

// Kind distinguishes the four diagnostic kinds spec.md §7 names.
type Kind int

const (
	KindLexical Kind = iota
	KindSyntactic
	KindSemantic
	KindInternal
)

// Diagnostic is one compiler-produced message: a numeric code, a severity,
// an optional source range (possibly NoRange), a free-text message, and the
// kind of failure that produced it.
type Diagnostic struct {
	Code     int
	Severity Severity
	Range    FileRange
	Message  string
	Kind     Kind
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere Go code expects an error.
func (d *Diagnostic) Error() string { return d.Format() }

// Format renders a single diagnostic as spec.md §6 specifies:
//
//	<file>(<row>,<col>): <severity> B<code>:<text>
//
// or, for a location-less diagnostic:
//
//	<severity> B<code>:<text>
func (d *Diagnostic) Format() string {
	if d.Range.HasSource() {
		return fmt.Sprintf("%s: %s B%d:%s", d.Range.String(), d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s B%d:%s", d.Severity, d.Code, d.Message)
}

// New builds an error-severity diagnostic.
func New(sub Subsystem, offset int, kind Kind, r FileRange, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:     Code(sub, offset),
		Severity: SeverityError,
		Range:    r,
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
	}
}

// Warning builds a warning-severity diagnostic. Warnings never change
// control flow (spec.md §6); only the severity differs from New.
func Warning(sub Subsystem, offset int, kind Kind, r FileRange, format string, args ...any) *Diagnostic {
	d := New(sub, offset, kind, r, format, args...)
	d.Severity = SeverityWarning
	return d
}
