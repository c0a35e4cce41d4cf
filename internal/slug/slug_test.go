package slug

import (
	"errors"
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator with typical titles, stop-word
// filtering, multi-script input, special characters, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Budget 2026 Announced",
			want:  "budget-2026-announced",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "Cricket",
			want:  "cricket",
		},

		// --- Stop-word filtering ---
		{
			name:  "stop words dropped after first",
			input: "India Wins the Final at Home",
			want:  "india-wins-final-home",
		},
		{
			name:  "leading stop word retained",
			input: "The Verdict Is Out",
			want:  "the-verdict-out",
		},
		{
			name:  "all stop words keeps first",
			input: "the a of",
			want:  "the",
		},
		{
			name:  "stop words case insensitive",
			input: "Storm AND Rain IN Delhi",
			want:  "storm-rain-delhi",
		},

		// --- Hindi and mixed script ---
		{
			name:  "hindi title with stop words",
			input: "भारत ने मैच जीता",
			want:  "भारत-मैच-जीता",
		},
		{
			name:  "hindi all stop words keeps first",
			input: "का की के",
			want:  "का",
		},
		{
			name:  "mixed hindi english",
			input: "Breaking: दिल्ली में बारिश Alert",
			want:  "breaking-दिल्ली-बारिश-alert",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-s-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ Arena",
			want:  "rock-roll-arena",
		},
		{
			name:  "hash and rupee",
			input: "Sensex #42 gains ₹100",
			want:  "sensex-42-gains-100",
		},
		{
			name:  "hyphenated words split",
			input: "well-known fact",
			want:  "well-known-fact",
		},

		// --- Whitespace handling ---
		{
			name:  "surrounding and repeated spaces",
			input: "  hello    world  ",
			want:  "hello-world",
		},
		{
			name:  "tabs and newlines as separators",
			input: "hello\tbig\nworld",
			want:  "hello-big-world",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only spaces",
			input: "     ",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!@#$%^&*()",
			want:  "",
		},
		{
			name:  "only hyphens",
			input: "-----",
			want:  "",
		},
		{
			name:  "single character",
			input: "A",
			want:  "a",
		},
		{
			name:  "numbers preserved",
			input: "12 34 56",
			want:  "12-34-56",
		},

		// --- Word limit ---
		{
			name:     "truncated to max words",
			input:    "one two three four five",
			maxWords: 3,
			want:     "one-two-three",
		},
		{
			name:     "stop words do not count toward limit",
			input:    "India and the Rain of March",
			maxWords: 3,
			want:     "india-rain-march",
		},
		{
			name:     "zero max words uses default",
			input:    "hello world",
			maxWords: 0,
			want:     "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input, tt.maxWords)
			if got != tt.want {
				t.Errorf("Generate(%q, %d) = %q, want %q", tt.input, tt.maxWords, got, tt.want)
			}
		})
	}
}

// TestGenerate_OutputCharset verifies that non-empty slugs contain only
// lowercase letters, digits, and single interior hyphens.
func TestGenerate_OutputCharset(t *testing.T) {
	inputs := []string{
		"Hello, World! 2026",
		"  --India -- Wins--  ",
		"दिल्ली में बारिश",
		"MIXED Case & Symbols £$%",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Generate(input, DefaultMaxWords)
			if got == "" {
				t.Fatalf("Generate(%q) returned empty slug", input)
			}
			if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
				t.Errorf("slug %q has leading or trailing hyphen", got)
			}
			if strings.Contains(got, "--") {
				t.Errorf("slug %q contains doubled hyphens", got)
			}
			if got != strings.ToLower(got) {
				t.Errorf("slug %q is not lowercase", got)
			}
			if strings.ContainsAny(got, " \t\n!?.,@#$%&") {
				t.Errorf("slug %q contains forbidden characters", got)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that slugifying an already valid slug
// returns the same slug. Stop-word positions matter here: a valid slug never
// starts with a droppable hyphen run, and its first token is always kept.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{
		"hello-world",
		"india-wins-final-2026",
		"the",
		"भारत-मैच-जीता",
		"123",
	}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			got := Generate(s, DefaultMaxWords)
			if got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// memChecker builds a Checker over a fixed set of taken slugs.
func memChecker(taken ...string) Checker {
	set := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		set[s] = struct{}{}
	}
	return func(candidate string) (bool, error) {
		_, ok := set[candidate]
		return ok, nil
	}
}

func TestEnsureUnique(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		taken []string
		want  string
	}{
		{
			name: "free slug returned unchanged",
			base: "news",
			want: "news",
		},
		{
			name:  "first collision gets suffix 1",
			base:  "news",
			taken: []string{"news"},
			want:  "news-1",
		},
		{
			name:  "second collision gets suffix 2",
			base:  "news",
			taken: []string{"news", "news-1"},
			want:  "news-2",
		},
		{
			name:  "gap in suffixes is reused",
			base:  "news",
			taken: []string{"news", "news-2"},
			want:  "news-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnsureUnique(tt.base, memChecker(tt.taken...))
			if err != nil {
				t.Fatalf("EnsureUnique: %v", err)
			}
			if got != tt.want {
				t.Errorf("EnsureUnique(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

// TestEnsureUnique_SelfExclusion models re-slugging an existing entity: the
// checker excludes the entity's own row, so the candidate stays unchanged
// even though that entity currently holds it.
func TestEnsureUnique_SelfExclusion(t *testing.T) {
	holders := map[string]string{"news": "article-42"}
	excludeID := "article-42"

	checker := func(candidate string) (bool, error) {
		holder, ok := holders[candidate]
		return ok && holder != excludeID, nil
	}

	got, err := EnsureUnique("news", checker)
	if err != nil {
		t.Fatalf("EnsureUnique: %v", err)
	}
	if got != "news" {
		t.Errorf("EnsureUnique with self-exclusion = %q, want %q", got, "news")
	}
}

func TestEnsureUnique_CheckerError(t *testing.T) {
	wantErr := errors.New("connection refused")
	checker := func(string) (bool, error) { return false, wantErr }

	_, err := EnsureUnique("news", checker)
	if !errors.Is(err, wantErr) {
		t.Errorf("EnsureUnique error = %v, want wrapped %v", err, wantErr)
	}
}
