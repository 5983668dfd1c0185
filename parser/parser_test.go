package parser

import (
	"errors"
	"testing"
	"time"
)

// tokenSummary flattens tokens so tests can compare them without the raw text.
func tokenSummary(tokens []MessageTemplateToken) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch v := tok.(type) {
		case *TextToken:
			out = append(out, "T:"+v.Text)
		case *PropertyToken:
			hint := ""
			switch v.Capturing {
			case Capture:
				hint = "@"
			case Stringify:
				hint = "$"
			}
			out = append(out, "P:"+hint+v.PropertyName)
		}
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"empty template", "", []string{}},
		{"text only", "Hello, World!", []string{"T:Hello, World!"}},
		{"single property", "Hello, {Name}!", []string{"T:Hello, ", "P:Name", "T:!"}},
		{"multiple properties", "User {UserId} logged in from {IpAddress}",
			[]string{"T:User ", "P:UserId", "T: logged in from ", "P:IpAddress"}},
		{"capturing hints", "Processing {@User} with {$Err}",
			[]string{"T:Processing ", "P:@User", "T: with ", "P:$Err"}},
		{"positional", "P1={0}, P2={1}", []string{"T:P1=", "P:0", "T:, P2=", "P:1"}},
		{"escaped braces", "Use {{double}} to escape", []string{"T:Use {double} to escape"}},
		{"unclosed property", "Hello {Name", []string{"T:Hello {Name"}},
		{"empty property is text", "Hello {}!", []string{"T:Hello {}!"}},
		{"invalid name is text", "Hello {first name}!", []string{"T:Hello {first name}!"}},
		{"adjacent properties", "{First}{Last}", []string{"P:First", "P:Last"}},
		{"dotted name", "{http.method} done", []string{"P:http.method", "T: done"}},
		{"alignment over limit is text", "{A,200000000}", []string{"T:{A,200000000}"}},
		{"alignment overflow is text", "{A,-99999999999999999999999}", []string{"T:{A,-99999999999999999999999}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			summary := tokenSummary(got.Tokens)
			if len(summary) != len(tt.want) {
				t.Fatalf("Parse() got %v, want %v", summary, tt.want)
			}
			for i := range summary {
				if summary[i] != tt.want[i] {
					t.Errorf("token %d: got %q, want %q", i, summary[i], tt.want[i])
				}
			}
			if got.Raw != tt.template {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.template)
			}
		})
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse("bad \xff template")
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestParseFormatAndAlignment(t *testing.T) {
	tmpl, err := Parse("{Name,-8}|{Count,5:000}|{Elapsed:F2}")
	if err != nil {
		t.Fatal(err)
	}
	props := tmpl.PropertyTokens()
	if len(props) != 3 {
		t.Fatalf("expected 3 property tokens, got %d", len(props))
	}
	if props[0].Alignment != -8 || props[0].Format != "" {
		t.Errorf("Name token: alignment=%d format=%q", props[0].Alignment, props[0].Format)
	}
	if props[1].Alignment != 5 || props[1].Format != "000" {
		t.Errorf("Count token: alignment=%d format=%q", props[1].Alignment, props[1].Format)
	}
	if props[2].Format != "F2" {
		t.Errorf("Elapsed token: format=%q", props[2].Format)
	}

	got := tmpl.Render(map[string]any{"Name": "api", "Count": 7, "Elapsed": 3.14159})
	want := "api     |  007|3.14"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestAlignmentBounds(t *testing.T) {
	tmpl, err := Parse("{A,1024}|{B,-1024}")
	if err != nil {
		t.Fatal(err)
	}
	props := tmpl.PropertyTokens()
	if len(props) != 2 || props[0].Alignment != MaxAlignment || props[1].Alignment != -MaxAlignment {
		t.Fatalf("expected alignments at the limit, got %v", tokenSummary(tmpl.Tokens))
	}
	if got := len(tmpl.Render(map[string]any{"A": 1, "B": 2})); got != 2*MaxAlignment+1 {
		t.Errorf("rendered length = %d, want %d", got, 2*MaxAlignment+1)
	}

	tmpl, err = Parse("{A,1025}")
	if err != nil {
		t.Fatal(err)
	}
	if got := tmpl.Render(map[string]any{"A": 1}); got != "{A,1025}" {
		t.Errorf("Render() = %q, want the literal token", got)
	}
}

func TestFloatPrecisionBounds(t *testing.T) {
	tmpl, err := Parse("{A:F200000000}")
	if err != nil {
		t.Fatal(err)
	}
	if got := tmpl.Render(map[string]any{"A": 1.5}); got != "1.5" {
		t.Errorf("Render() = %q, want %q", got, "1.5")
	}
}

func TestRender(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		template string
		props    map[string]any
		want     string
	}{
		{"missing property keeps token", "Hello {Name}", nil, "Hello {Name}"},
		{"missing keeps format", "Took {Ms:000}", nil, "Took {Ms:000}"},
		{"string unquoted", "Hello {Name}", map[string]any{"Name": "World"}, "Hello World"},
		{"quoted format", "Hello {Name:q}", map[string]any{"Name": "World"}, `Hello "World"`},
		{"nil", "Value {V}", map[string]any{"V": nil}, "Value nil"},
		{"hex", "{N:X}", map[string]any{"N": 255}, "FF"},
		{"percent", "{R:P1}", map[string]any{"R": 0.125}, "12.5%"},
		{"time layout", "{T:yyyy-MM-dd}", map[string]any{"T": ts}, "2024-03-01"},
		{"time default", "{T}", map[string]any{"T": ts}, "2024-03-01T12:30:00Z"},
		{"json", "{V:j}", map[string]any{"V": []int{1, 2}}, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.template)
			if err != nil {
				t.Fatal(err)
			}
			if got := tmpl.Render(tt.props); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderArgs(t *testing.T) {
	tests := []struct {
		template string
		args     []any
		want     string
	}{
		{"P1={0}, P2={1}", []any{1, 2}, "P1=1, P2=2"},
		{"P1={Param1}, P2={Param2}", []any{1, 2}, "P1=1, P2=2"},
		{"{1} before {0}", []any{"a", "b"}, "b before a"},
		{"{Name} and {Name}", []any{"x"}, "x and x"},
	}
	for _, tt := range tests {
		tmpl, err := Parse(tt.template)
		if err != nil {
			t.Fatal(err)
		}
		if got := tmpl.RenderArgs(tt.args...); got != tt.want {
			t.Errorf("RenderArgs(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestIsPositional(t *testing.T) {
	tests := map[string]bool{
		"no tokens":        false,
		"{0} {1}":          true,
		"{0} {Name}":       false,
		"{Name}":           false,
		"{10} and {2}":     true,
		"{{0}} is escaped": false,
	}
	for template, want := range tests {
		tmpl, err := Parse(template)
		if err != nil {
			t.Fatal(err)
		}
		if got := tmpl.IsPositional(); got != want {
			t.Errorf("IsPositional(%q) = %v, want %v", template, got, want)
		}
	}
}

func TestExtractPropertyNames(t *testing.T) {
	names := ExtractPropertyNames("{A} {B} {A} {@C}")
	want := []string{"A", "B", "C"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParseCached(t *testing.T) {
	ClearCache()
	before := GetCacheStats()

	first, err := ParseCached("Cached {Value}")
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseCached("Cached {Value}")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached template instance to be reused")
	}

	stats := GetCacheStats()
	if stats.Hits-before.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits-before.Hits)
	}
	if stats.Size != 1 {
		t.Errorf("expected size 1, got %d", stats.Size)
	}
}

func TestTemplateCacheEviction(t *testing.T) {
	c := newTemplateCache(2)
	c.put("a", Empty())
	c.put("b", Empty())
	c.get("a")
	c.put("c", Empty())

	if _, ok := c.get("b"); ok {
		t.Error("expected least recently used entry to be evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Error("expected recently used entry to survive")
	}
	if c.evictions.Load() != 1 {
		t.Errorf("expected 1 eviction, got %d", c.evictions.Load())
	}
}
