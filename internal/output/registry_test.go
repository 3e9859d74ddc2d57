package output

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/facet/internal/review"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	want := []string{"html", "json", "markdown", "template", "terminal"}
	if got := r.Formats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	for _, name := range want {
		f, err := r.New(name, nil)
		if err != nil {
			t.Errorf("New(%q) error: %v", name, err)
		}
		if f == nil {
			t.Errorf("New(%q) returned nil formatter", name)
		}
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("yaml", nil)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

// stubFormatter is a fixed-output formatter for registry and router tests.
type stubFormatter struct {
	content string
	err     error
}

func (s *stubFormatter) Format(findings []review.Finding, octx review.OutputContext, subFormat string, opts map[string]string) (*FormattedOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return NewFormattedOutput("stub", s.content, nil), nil
}

func TestRegistryCustomFormat(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", func(cfg *FormatterConfig) Formatter {
		return &stubFormatter{content: "custom output"}
	})

	f, err := r.New("custom", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	out, err := f.Format(nil, review.OutputContext{}, "", nil)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out.Content != "custom output" {
		t.Errorf("Content = %q", out.Content)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", func(cfg *FormatterConfig) Formatter {
		return &stubFormatter{content: "first"}
	})
	r.Register("custom", func(cfg *FormatterConfig) Formatter {
		return &stubFormatter{content: "second"}
	})

	f, err := r.New("custom", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	out, err := f.Format(nil, review.OutputContext{}, "", nil)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out.Content != "second" {
		t.Errorf("Content = %q, want the later registration", out.Content)
	}
}

func TestRegistryOverrideBuiltin(t *testing.T) {
	r := NewRegistry()
	r.Register("terminal", func(cfg *FormatterConfig) Formatter {
		return &stubFormatter{content: "replaced"}
	})
	f, err := r.New("terminal", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	out, err := f.Format(nil, review.OutputContext{}, "", nil)
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if out.Content != "replaced" {
		t.Error("built-in registration should be replaceable")
	}
}
