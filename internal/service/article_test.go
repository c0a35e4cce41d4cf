package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"chronicle/internal/models"
	"chronicle/internal/publicid"
	"chronicle/internal/store"
)

// fakeArticleRepo is an in-memory ArticleRepo. Setting conflicts > 0 makes
// the next writes fail with ErrSlugConflict while also claiming the slug,
// simulating a concurrent writer winning the race after the probe.
type fakeArticleRepo struct {
	slugs             map[string]uuid.UUID // slug -> owning article
	publicIDs         map[string]bool
	articles          map[uuid.UUID]*models.Article
	conflicts         int
	allPublicIDsTaken bool
	createCalls       int
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{
		slugs:     make(map[string]uuid.UUID),
		publicIDs: make(map[string]bool),
		articles:  make(map[uuid.UUID]*models.Article),
	}
}

func (f *fakeArticleRepo) SlugExists(s string, excludeID uuid.UUID) (bool, error) {
	owner, ok := f.slugs[s]
	return ok && owner != excludeID, nil
}

func (f *fakeArticleRepo) PublicIDExists(id string) (bool, error) {
	if f.allPublicIDsTaken {
		return true, nil
	}
	return f.publicIDs[id], nil
}

func (f *fakeArticleRepo) FindByID(id uuid.UUID) (*models.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArticleRepo) Create(a *models.Article) (*models.Article, error) {
	f.createCalls++
	if f.conflicts > 0 {
		f.conflicts--
		f.slugs[a.Slug] = uuid.New() // the concurrent winner
		return nil, store.ErrSlugConflict
	}
	if _, taken := f.slugs[a.Slug]; taken {
		return nil, store.ErrSlugConflict
	}

	cp := *a
	cp.ID = uuid.New()
	f.slugs[cp.Slug] = cp.ID
	f.publicIDs[cp.PublicID] = true
	f.articles[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeArticleRepo) Update(a *models.Article) error {
	if f.conflicts > 0 {
		f.conflicts--
		f.slugs[a.Slug] = uuid.New()
		return store.ErrSlugConflict
	}
	if owner, taken := f.slugs[a.Slug]; taken && owner != a.ID {
		return store.ErrSlugConflict
	}

	old := f.articles[a.ID]
	delete(f.slugs, old.Slug)
	cp := *a
	f.slugs[cp.Slug] = cp.ID
	f.articles[cp.ID] = &cp
	return nil
}

func testInput(title string) ArticleInput {
	return ArticleInput{
		Title:          title,
		Description:    "A test article.",
		Content:        "Some **markdown** body.",
		CategoryID:     uuid.New(),
		SubcategoryIDs: []uuid.UUID{uuid.New()},
		PublishedAt:    time.Now(),
	}
}

func TestArticleCreate_DerivesSlugAndPublicID(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("India Wins the Final"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Slug != "india-wins-final" {
		t.Errorf("slug: got %q, want %q", created.Slug, "india-wins-final")
	}
	if !publicid.Valid(created.PublicID) {
		t.Errorf("public ID %q is not a valid 12-digit ID", created.PublicID)
	}
	if !strings.Contains(created.ContentHTML, "<strong>markdown</strong>") {
		t.Errorf("content not rendered: %q", created.ContentHTML)
	}
}

func TestArticleCreate_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	first, err := svc.Create(uuid.New(), testInput("Budget Update"))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(uuid.New(), testInput("Budget Update"))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	if first.Slug != "budget-update" {
		t.Errorf("first slug: got %q, want %q", first.Slug, "budget-update")
	}
	if second.Slug != "budget-update-1" {
		t.Errorf("second slug: got %q, want %q", second.Slug, "budget-update-1")
	}
	if first.PublicID == second.PublicID {
		t.Error("two articles received the same public ID")
	}
}

func TestArticleCreate_UntitledFallback(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("!!! ???"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "untitled" {
		t.Errorf("slug: got %q, want %q", created.Slug, "untitled")
	}
}

func TestArticleCreate_RetriesOnConflict(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.conflicts = 1 // first insert loses the race
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("Election Results"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The retry re-resolved against the winner's slug.
	if created.Slug != "election-results-1" {
		t.Errorf("slug after retry: got %q, want %q", created.Slug, "election-results-1")
	}
	if repo.createCalls != 2 {
		t.Errorf("create calls: got %d, want 2", repo.createCalls)
	}
}

func TestArticleCreate_PublicIDExhaustionBlocksWrite(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.allPublicIDsTaken = true
	svc := NewArticleService(repo)

	_, err := svc.Create(uuid.New(), testInput("Never Stored"))
	if !errors.Is(err, publicid.ErrAllocationExhausted) {
		t.Fatalf("expected ErrAllocationExhausted, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("article must not be written when allocation fails, got %d create calls", repo.createCalls)
	}
}

func TestArticleUpdate_TitleUnchangedKeepsSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("Monsoon Season Begins"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := testInput("Monsoon Season Begins")
	in.Description = "Updated description."
	updated, err := svc.Update(created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Slug != created.Slug {
		t.Errorf("slug changed on same-title update: %q -> %q", created.Slug, updated.Slug)
	}
	if updated.Description != "Updated description." {
		t.Errorf("description not updated: %q", updated.Description)
	}
}

func TestArticleUpdate_TitleChangeRecomputesSlug(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("Old Headline"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(created.ID, testInput("New Headline Entirely"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Slug != "new-headline-entirely" {
		t.Errorf("slug: got %q, want %q", updated.Slug, "new-headline-entirely")
	}
	if updated.PublicID != created.PublicID {
		t.Errorf("public ID must be immutable: %q -> %q", created.PublicID, updated.PublicID)
	}
}

func TestArticleUpdate_SelfExclusionAllowsRevert(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	created, err := svc.Create(uuid.New(), testInput("Stable Headline"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Change the title away and back. The probe must ignore the article's
	// own row, so the original slug is reusable without a suffix.
	if _, err := svc.Update(created.ID, testInput("Interim Headline")); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	reverted, err := svc.Update(created.ID, testInput("Stable Headline"))
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}

	if reverted.Slug != "stable-headline" {
		t.Errorf("slug: got %q, want %q", reverted.Slug, "stable-headline")
	}
}

func TestArticleUpdate_NotFound(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewArticleService(repo)

	_, err := svc.Update(uuid.New(), testInput("Missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
