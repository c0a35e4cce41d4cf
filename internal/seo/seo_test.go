package seo

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

// fakeFinder maps public IDs to articles.
type fakeFinder map[string]*models.Article

func (f fakeFinder) FindByPublicID(publicID string) (*models.Article, error) {
	return f[publicID], nil
}

// errFinder always fails, for store-error propagation tests.
type errFinder struct{ err error }

func (f errFinder) FindByPublicID(string) (*models.Article, error) { return nil, f.err }

func testArticle() *models.Article {
	return &models.Article{
		ID:           uuid.New(),
		PublicID:     "123456789012",
		Title:        "India Wins",
		Slug:         "india-wins",
		CategorySlug: "sports",
		Subcategories: []models.Subcategory{
			{Slug: "cricket"},
			{Slug: "hockey"},
		},
	}
}

func TestParseSlugID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSlug string
		wantID   string
		wantErr  bool
	}{
		{
			name:     "well formed",
			input:    "india-wins-123456789012",
			wantSlug: "india-wins",
			wantID:   "123456789012",
		},
		{
			name:     "single word slug",
			input:    "breaking-698431126604",
			wantSlug: "breaking",
			wantID:   "698431126604",
		},
		{
			name:    "no hyphen",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "non numeric tail",
			input:   "india-wins-final",
			wantErr: true,
		},
		{
			name:    "tail too short",
			input:   "india-wins-12345",
			wantErr: true,
		},
		{
			name:    "empty segment",
			input:   "",
			wantErr: true,
		},
		{
			name:     "hyphen only",
			input:    "-123456789012",
			wantSlug: "",
			wantID:   "123456789012",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, id, err := ParseSlugID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("ParseSlugID(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlugID(%q): %v", tt.input, err)
			}
			if slug != tt.wantSlug || id != tt.wantID {
				t.Errorf("ParseSlugID(%q) = (%q, %q), want (%q, %q)",
					tt.input, slug, id, tt.wantSlug, tt.wantID)
			}
		})
	}
}

func TestResolve_Canonical(t *testing.T) {
	r := NewResolver(fakeFinder{"123456789012": testArticle()})

	// Primary subcategory.
	res, err := r.Resolve("sports", "cricket", "india-wins-123456789012")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Canonical {
		t.Errorf("expected canonical, got redirect to %s", res.CanonicalPath)
	}
	if res.ShouldRedirect(false) {
		t.Error("canonical request must not redirect")
	}

	// A non-primary subcategory the article belongs to is also canonical.
	res, err = r.Resolve("sports", "hockey", "india-wins-123456789012")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Canonical {
		t.Errorf("hockey is among the article's subcategories, expected canonical; got %s", res.CanonicalPath)
	}
}

func TestResolve_Redirects(t *testing.T) {
	r := NewResolver(fakeFinder{"123456789012": testArticle()})

	tests := []struct {
		name        string
		category    string
		subcategory string
		slugID      string
		wantPath    string
	}{
		{
			name:        "wrong category",
			category:    "news",
			subcategory: "cricket",
			slugID:      "india-wins-123456789012",
			wantPath:    "/sports/cricket/india-wins-123456789012",
		},
		{
			name:        "unknown subcategory falls back to primary",
			category:    "sports",
			subcategory: "tennis",
			slugID:      "india-wins-123456789012",
			wantPath:    "/sports/cricket/india-wins-123456789012",
		},
		{
			name:        "stale article slug",
			category:    "sports",
			subcategory: "cricket",
			slugID:      "india-victorious-123456789012",
			wantPath:    "/sports/cricket/india-wins-123456789012",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(tt.category, tt.subcategory, tt.slugID)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if res.Canonical {
				t.Fatal("expected non-canonical resolution")
			}
			if res.CanonicalPath != tt.wantPath {
				t.Errorf("canonical path = %q, want %q", res.CanonicalPath, tt.wantPath)
			}
			if !res.ShouldRedirect(false) {
				t.Error("browser request off-canonical must redirect")
			}
			if res.ShouldRedirect(true) {
				t.Error("api client must not be redirected")
			}
		})
	}
}

// TestResolve_PercentEncodedSlug checks that encoded path segments are
// decoded before the canonical comparison.
func TestResolve_PercentEncodedSlug(t *testing.T) {
	article := testArticle()
	article.Slug = "भारत-जीता"
	r := NewResolver(fakeFinder{"123456789012": article})

	encoded := "%E0%A4%AD%E0%A4%BE%E0%A4%B0%E0%A4%A4-%E0%A4%9C%E0%A5%80%E0%A4%A4%E0%A4%BE"
	res, err := r.Resolve("sports", "cricket", encoded+"-123456789012")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Canonical {
		t.Errorf("percent-encoded slug should compare equal; redirect = %s", res.CanonicalPath)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(fakeFinder{})

	_, err := r.Resolve("sports", "cricket", "india-wins-999999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve error = %v, want ErrNotFound", err)
	}
}

func TestResolve_InvalidFormat(t *testing.T) {
	r := NewResolver(fakeFinder{})

	_, err := r.Resolve("sports", "cricket", "abc")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Resolve error = %v, want ErrInvalidFormat", err)
	}
}

func TestResolve_StoreError(t *testing.T) {
	wantErr := errors.New("db down")
	r := NewResolver(errFinder{err: wantErr})

	_, err := r.Resolve("sports", "cricket", "india-wins-123456789012")
	if !errors.Is(err, wantErr) {
		t.Errorf("Resolve error = %v, want wrapped %v", err, wantErr)
	}
}
