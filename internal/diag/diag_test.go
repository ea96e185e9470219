package diag

import (
	"testing"

	"github.com/tangzhangming/cango/internal/i18n"
)

func TestSinkCounts(t *testing.T) {
	s := NewSink()
	if s.HasErrors() || s.Count() != 0 {
		t.Fatal("new sink must be empty")
	}

	s.Warn(CategoryUnsupported, Pos{Offset: 5}, i18n.WarnUnsupported, "goto spaghetti")
	if s.HasErrors() {
		t.Error("warnings alone must not set HasErrors")
	}

	s.Error(CategorySemantic, Pos{Offset: 12}, i18n.ErrUndeclared, "x")
	s.Error(CategoryLexical, Pos{Offset: 1}, i18n.ErrUntermString)

	if !s.HasErrors() {
		t.Error("HasErrors = false after errors were added")
	}
	if got := s.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := s.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount = %d, want 2", got)
	}
	if got := s.WarningCount(); got != 1 {
		t.Errorf("WarningCount = %d, want 1", got)
	}
}

func TestDiagnosticsSortedByOffset(t *testing.T) {
	s := NewSink()
	s.Error(CategorySemantic, Pos{Offset: 40, Line: 3}, i18n.ErrUndeclared, "c")
	s.Error(CategorySemantic, Pos{Offset: 8, Line: 1}, i18n.ErrUndeclared, "a")
	s.Error(CategorySemantic, Pos{Offset: 20, Line: 2}, i18n.ErrUndeclared, "b")

	out := s.Diagnostics()
	for i := 1; i < len(out); i++ {
		if out[i-1].Pos.Offset > out[i].Pos.Offset {
			t.Fatalf("diagnostics not sorted: offset %d before %d",
				out[i-1].Pos.Offset, out[i].Pos.Offset)
		}
	}
}

func TestDiagnosticsStableAtSameOffset(t *testing.T) {
	s := NewSink()
	s.Warn(CategoryUnsupported, Pos{Offset: 7}, i18n.WarnUnsupported, "first")
	s.Error(CategorySemantic, Pos{Offset: 7}, i18n.ErrUndeclared, "second")

	out := s.Diagnostics()
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Severity != SeverityWarning || out[1].Severity != SeverityError {
		t.Error("same-offset diagnostics must keep append order")
	}
}

func TestMessageFormatting(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	s := NewSink()
	s.Error(CategorySemantic, Pos{}, i18n.ErrUndeclared, "frobnicate")
	got := s.Diagnostics()[0].Message
	want := "use of undeclared identifier 'frobnicate'"
	if got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
}

func TestDiagnosticsReturnsCopy(t *testing.T) {
	s := NewSink()
	s.Error(CategorySemantic, Pos{Offset: 9}, i18n.ErrUndeclared, "x")
	out := s.Diagnostics()
	out[0].Pos.Offset = 999
	if s.Diagnostics()[0].Pos.Offset != 9 {
		t.Error("Diagnostics must not expose the sink's backing slice")
	}
}

func TestStrings(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("severity names wrong")
	}
	cases := map[Category]string{
		CategoryLexical:     "lexical",
		CategorySyntax:      "syntax",
		CategorySemantic:    "semantic",
		CategoryUnsupported: "unsupported",
	}
	for c, want := range cases {
		if c.String() != want {
			t.Errorf("Category(%d).String() = %q, want %q", c, c.String(), want)
		}
	}
}
