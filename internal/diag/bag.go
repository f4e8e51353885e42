package diag

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Bag collects diagnostics produced during one compilation. It is not
// safe for concurrent use; spec.md §5 compiles one unit at a time.
type Bag struct {
	items []*Diagnostic
	limit int // 0 means unlimited; set via SetLimit (internal/config's MaxDiagnostics)
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// SetLimit caps how many diagnostics Add accepts; 0 (the default) means
// unlimited. Exists for pathologically broken input, where the resolver's
// "collect, don't abort" policy would otherwise produce an unreadable wall
// of cascading errors — internal/config.Options.MaxDiagnostics feeds this.
func (b *Bag) SetLimit(n int) { b.limit = n }

// Add appends d to the bag. A nil d is ignored so call sites can write
// `bag.Add(maybeNil())` without a guard. Once the bag's limit (if any) is
// reached, further diagnostics are silently dropped rather than causing an
// error of their own — the cap exists to keep output readable, not to
// surface its own failure mode.
func (b *Bag) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	if b.limit > 0 && len(b.items) >= b.limit {
		return
	}
	b.items = append(b.items, d)
}

// All returns every diagnostic added so far, in insertion order.
func (b *Bag) All() []*Diagnostic { return b.items }

// HasErrors reports whether any error-severity diagnostic was recorded.
// Per spec.md §7, "any error recorded" is a build failure; warnings never
// change control flow.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount and WarningCount support the summary line's singular/plural
// formatting (spec.md §6).
func (b *Bag) ErrorCount() int   { return b.countSeverity(SeverityError) }
func (b *Bag) WarningCount() int { return b.countSeverity(SeverityWarning) }

func (b *Bag) countSeverity(s Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Summary renders the final error/warning counts with correct
// singular/plural forms, as spec.md §6 requires.
func (b *Bag) Summary() string {
	errs, warns := b.ErrorCount(), b.WarningCount()
	return fmt.Sprintf("%s, %s", pluralize(errs, "error"), pluralize(warns, "warning"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatAll renders every diagnostic, one per line, followed by the
// summary line.
func (b *Bag) FormatAll() string {
	var sb strings.Builder
	for _, d := range b.items {
		sb.WriteString(d.Format())
		sb.WriteString("\n")
	}
	sb.WriteString(b.Summary())
	return sb.String()
}

// JSON renders the bag as a machine-readable JSON array, for tooling that
// wants structured diagnostics instead of the human-readable format. Built
// incrementally with sjson rather than via encoding/json + a mirror struct,
// since the Diagnostic shape is small and stable and this avoids a second
// type just for marshaling.
func (b *Bag) JSON() (string, error) {
	doc := "[]"
	var err error
	for i, d := range b.items {
		path := fmt.Sprintf("%d", i)
		doc, err = sjson.Set(doc, path+".code", d.Code)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".severity", d.Severity.String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, path+".message", d.Message)
		if err != nil {
			return "", err
		}
		if d.Range.HasSource() {
			doc, err = sjson.Set(doc, path+".file", d.Range.File)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, path+".row", d.Range.StartRow)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, path+".col", d.Range.StartCol)
			if err != nil {
				return "", err
			}
		}
	}
	return string(pretty.Pretty([]byte(doc))), nil
}

// CodesWithSeverity filters the bag's JSON payload for diagnostics at the
// given severity, returning their codes. Exists mainly so CLI/tests can
// query the JSON payload without round-tripping through Go structs.
func CodesWithSeverity(jsonDoc string, severity string) []int {
	var codes []int
	result := gjson.Parse(jsonDoc)
	result.ForEach(func(_, value gjson.Result) bool {
		if value.Get("severity").String() == severity {
			codes = append(codes, int(value.Get("code").Int()))
		}
		return true
	})
	return codes
}
