package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew_RegisteredCode(t *testing.T) {
	err := New("E001")
	if err.Code != "E001" {
		t.Errorf("Code = %q, want E001", err.Code)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q, want config", err.Category)
	}
	if err.Message == "" {
		t.Error("Message should not be empty")
	}
	if err.DocURL == "" {
		t.Error("DocURL should not be empty")
	}
}

func TestNew_UnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestError_String(t *testing.T) {
	err := New("E060")
	if got := err.Error(); !strings.HasPrefix(got, "E060: ") {
		t.Errorf("Error() = %q, want E060 prefix", got)
	}

	uncoded := Newf(CategoryCLI, "something %s", "broke")
	if got := uncoded.Error(); got != "something broke" {
		t.Errorf("Error() = %q", got)
	}
}

func TestBuilders(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New("E060").
		WithPath("/tmp/project/src/apps/docs").
		WithDetail("could not remove directory").
		WithSuggestion("Check file permissions").
		Wrap(cause)

	if err.Path != "/tmp/project/src/apps/docs" {
		t.Errorf("Path = %q", err.Path)
	}
	if err.Detail != "could not remove directory" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Suggestion != "Check file permissions" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should match wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E040") != nil {
		t.Error("FromError(nil) should be nil")
	}

	ie := New("E001")
	if got := FromError(ie, "E040"); got != ie {
		t.Error("FromError should pass through InstallError unchanged")
	}

	plain := stderrors.New("boom")
	wrapped := FromError(plain, "E040")
	if wrapped.Code != "E040" {
		t.Errorf("Code = %q, want E040", wrapped.Code)
	}
	if !stderrors.Is(wrapped, plain) {
		t.Error("wrapped error should unwrap to original")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithPath("/tmp/dest").
		WithSuggestion("Use an empty directory")

	out := err.Format()
	for _, want := range []string{"E001", "/tmp/dest", "Hint:", "Learn more:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E060").WithPath("src/apps/docs")
	got := err.FormatCompact()
	if !strings.HasPrefix(got, "src/apps/docs: E060: ") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestRegistryCodesHaveDocs(t *testing.T) {
	for _, code := range []string{
		"E001", "E002", "E003", "E004",
		"E020", "E021", "E022",
		"E040", "E041", "E042",
		"E060",
		"E070", "E071", "E072", "E073", "E074",
		"E090", "E091",
	} {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Errorf("code %s not registered", code)
			continue
		}
		if tmpl.DocURL == "" {
			t.Errorf("code %s has no DocURL", code)
		}
		if tmpl.Category == "" {
			t.Errorf("code %s has no category", code)
		}
	}
}
