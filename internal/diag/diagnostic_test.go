package diag

import (
	"strings"
	"testing"
)

func TestCodeNamespacing(t *testing.T) {
	tests := []struct {
		sub  Subsystem
		off  int
		want int
	}{
		{SubsystemGeneral, 1, 1001},
		{SubsystemLexer, 0, 2000},
		{SubsystemParser, 12, 2112},
		{SubsystemResolver, 7, 3007},
		{SubsystemCodegen, 1, 5001},
	}
	for _, tt := range tests {
		if got := Code(tt.sub, tt.off); got != tt.want {
			t.Errorf("Code(%v, %d) = %d, want %d", tt.sub, tt.off, got, tt.want)
		}
	}
}

func TestDiagnosticFormat(t *testing.T) {
	d := New(SubsystemParser, 1, KindSyntactic, FileRange{File: "a.ast", StartRow: 3, StartCol: 5}, "unexpected token %q", ";")
	want := "a.ast(3,5): error B2101:unexpected token \";\""
	if got := d.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestDiagnosticFormatNoRange(t *testing.T) {
	d := Warning(SubsystemGeneral, 1, KindInternal, NoRange, "no source available")
	want := "warning B1001:no source available"
	if got := d.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestBagSummaryPluralization(t *testing.T) {
	b := NewBag()
	b.Add(New(SubsystemParser, 1, KindSyntactic, NoRange, "x"))
	if got := b.Summary(); got != "1 error, 0 warnings" {
		t.Errorf("Summary() = %q", got)
	}
	b.Add(Warning(SubsystemResolver, 1, KindSemantic, NoRange, "y"))
	b.Add(Warning(SubsystemResolver, 2, KindSemantic, NoRange, "z"))
	if got := b.Summary(); got != "1 error, 2 warnings" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestBagHasErrorsIgnoresWarnings(t *testing.T) {
	b := NewBag()
	b.Add(Warning(SubsystemLexer, 1, KindLexical, NoRange, "hint"))
	if b.HasErrors() {
		t.Fatal("HasErrors() true with only a warning recorded")
	}
	b.Add(New(SubsystemLexer, 2, KindLexical, NoRange, "boom"))
	if !b.HasErrors() {
		t.Fatal("HasErrors() false after adding an error")
	}
}

func TestBagJSONRoundTrip(t *testing.T) {
	b := NewBag()
	b.Add(New(SubsystemParser, 1, KindSyntactic, FileRange{File: "f.ast", StartRow: 1, StartCol: 1}, "boom"))
	js, err := b.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if !strings.Contains(js, "2101") {
		t.Errorf("JSON() = %s, missing code", js)
	}
	codes := CodesWithSeverity(js, "error")
	if len(codes) != 1 || codes[0] != 2101 {
		t.Errorf("CodesWithSeverity = %v", codes)
	}
}

func TestBagSetLimitDropsExcess(t *testing.T) {
	b := NewBag()
	b.SetLimit(2)
	b.Add(New(SubsystemParser, 1, KindSyntactic, NoRange, "a"))
	b.Add(New(SubsystemParser, 2, KindSyntactic, NoRange, "b"))
	b.Add(New(SubsystemParser, 3, KindSyntactic, NoRange, "c"))
	if got := len(b.All()); got != 2 {
		t.Errorf("len(All()) = %d, want 2", got)
	}
}

func TestFileRangeJoin(t *testing.T) {
	a := FileRange{File: "f", StartRow: 1, StartCol: 1, EndRow: 1, EndCol: 3}
	b := FileRange{File: "f", StartRow: 1, StartCol: 5, EndRow: 2, EndCol: 1}
	j := Join(a, b)
	if j.StartRow != 1 || j.StartCol != 1 || j.EndRow != 2 || j.EndCol != 1 {
		t.Errorf("Join() = %+v", j)
	}
	if got := Join(NoRange, b); got != b {
		t.Errorf("Join(NoRange, b) = %+v, want %+v", got, b)
	}
}
