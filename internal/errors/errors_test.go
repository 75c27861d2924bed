package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "locale activation",
			code:    "E101",
			wantMsg: "Locale activation failed",
			wantCat: CategoryLocale,
		},
		{
			name:    "reload interrupted",
			code:    "E110",
			wantMsg: "Reload interrupted",
			wantCat: CategoryReload,
		},
		{
			name:    "unknown breakpoint",
			code:    "E140",
			wantMsg: "Unknown breakpoint",
			wantCat: CategoryBreakpoint,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "addr")
	if err.Message != `flag "addr" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != `flag "addr" is required` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("E102").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); got != "E102: Locale persistence failed: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E130").Wrap(stderrors.New("dial tcp"))
	outer := New("E102").Wrap(inner)

	if !HasCode(outer, "E102") {
		t.Error("HasCode(outer, E102) = false")
	}
	if !HasCode(outer, "E130") {
		t.Error("HasCode should search the chain")
	}
	if HasCode(outer, "E101") {
		t.Error("HasCode(outer, E101) = true")
	}
	if HasCode(stderrors.New("plain"), "E101") {
		t.Error("plain errors carry no code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	coded := New("E121")
	if FromError(coded, "E120") != coded {
		t.Error("FromError should return an existing *Error unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E120")
	if got.Code != "E120" || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E121").
		WithDetail("reload.delay must be a duration").
		WithSuggestion(`Use a value like "300ms"`).
		Wrap(stderrors.New("time: invalid duration"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E121: Invalid configuration value",
		"reload.delay must be a duration",
		"Cause: time: invalid duration",
		`Hint: Use a value like "300ms"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if err.FormatCompact() != "E121: Invalid configuration value" {
		t.Errorf("FormatCompact() = %q", err.FormatCompact())
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(plain) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New("E122"))
	if !strings.Contains(buf.String(), "ERROR E122") {
		t.Errorf("Fprint(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, line := range lines {
		if len(line) > 20 {
			t.Errorf("line too long: %q", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Errorf("Lookup(%q) failed", code)
			continue
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template: %+v", code, tmpl)
		}
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"sm", "md", "lg", "xl", "2xl"}

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"sm", "sm", true},
		{"SM", "sm", true},
		{"xxl", "xl", true},
		{"smm", "sm", true},
		{"extra-large", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Closest(tt.input, candidates)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Closest(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSuggestClosest(t *testing.T) {
	err := New("E100").SuggestClosest("zh-cn", []string{"zh-CN", "en"})
	if err.Suggestion != `Did you mean "zh-CN"?` {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}

	err = New("E100").SuggestClosest("klingon", []string{"zh-CN", "en"})
	if err.Suggestion != "" {
		t.Errorf("Suggestion = %q, want empty", err.Suggestion)
	}
}
