package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string // substrings that must appear in the output
	}{
		{
			name:   "basic paragraph",
			source: "Hello, world.",
			want:   []string{"<p>Hello, world.</p>"},
		},
		{
			name:   "heading with anchor id",
			source: "## Match Report",
			want:   []string{"<h2", `id="match-report"`, "Match Report"},
		},
		{
			name:   "gfm table",
			source: "| Team | Score |\n|------|-------|\n| India | 3 |",
			want:   []string{"<table>", "<td>India</td>"},
		},
		{
			name:   "strikethrough",
			source: "~~cancelled~~",
			want:   []string{"<del>cancelled</del>"},
		},
		{
			name:   "fenced code block",
			source: "```\nfmt.Println(\"hi\")\n```",
			want:   []string{"<pre", "fmt.Println"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q): %v", tt.source, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestToHTML_StripsScripts(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		banned  string
	}{
		{
			name:   "script tag",
			source: "before\n\n<script>alert(1)</script>\n\nafter",
			banned: "<script",
		},
		{
			name:   "onerror attribute",
			source: `<img src="x" onerror="alert(1)">`,
			banned: "onerror",
		},
		{
			name:   "javascript href",
			source: `[click](javascript:alert(1))`,
			banned: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if strings.Contains(got, tt.banned) {
				t.Errorf("sanitizer let %q through:\n%s", tt.banned, got)
			}
		})
	}
}

func TestToHTML_KeepsSafeLinks(t *testing.T) {
	got, err := ToHTML("[report](https://example.com/report)")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, `href="https://example.com/report"`) {
		t.Errorf("expected safe link to survive sanitization:\n%s", got)
	}
}
