// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"chronicle/internal/models"
)

// ArticleStore handles all article-related database operations, including
// the slug/public-id existence probes used by the derivation pipeline.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// articleColumns selects an article row joined with its category and author,
// plus a comma-joined tag aggregate. Subcategories need ordered rows from
// the link table and are populated separately.
const articleColumns = `
	a.id, a.public_id, a.title, a.slug, a.description, a.content, a.content_html,
	a.category_id, a.author_id, a.image_url, a.source_name, a.source_url,
	a.view_count, a.is_featured, a.published_at, a.created_at, a.updated_at,
	c.name, c.slug, u.display_name,
	(SELECT COALESCE(string_agg(t.tag, ',' ORDER BY t.tag), '')
	 FROM article_tags t WHERE t.article_id = a.id)`

const articleFrom = `
	FROM articles a
	JOIN categories c ON c.id = a.category_id
	JOIN users u ON u.id = a.author_id`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	a := &models.Article{}
	var tags string
	err := row.Scan(
		&a.ID, &a.PublicID, &a.Title, &a.Slug, &a.Description, &a.Content,
		&a.ContentHTML, &a.CategoryID, &a.AuthorID, &a.ImageURL, &a.SourceName,
		&a.SourceURL, &a.ViewCount, &a.IsFeatured, &a.PublishedAt,
		&a.CreatedAt, &a.UpdatedAt,
		&a.CategoryName, &a.CategorySlug, &a.AuthorName, &tags,
	)
	if err != nil {
		return nil, err
	}
	if tags != "" {
		a.Tags = strings.Split(tags, ",")
	}
	return a, nil
}

// loadSubcategories populates the ordered subcategory list for one article.
// Position 0 is the primary subcategory.
func (s *ArticleStore) loadSubcategories(a *models.Article) error {
	rows, err := s.db.Query(`
		SELECT `+subcategoryColumns+`
		FROM article_subcategories l
		JOIN subcategories s ON s.id = l.subcategory_id
		JOIN categories c ON c.id = s.category_id
		WHERE l.article_id = $1
		ORDER BY l.position
	`, a.ID)
	if err != nil {
		return fmt.Errorf("load article subcategories: %w", err)
	}
	defer rows.Close()

	subs, err := scanSubcategoryRows(rows)
	if err != nil {
		return err
	}
	a.Subcategories = subs
	a.SubcategoryIDs = make([]uuid.UUID, len(subs))
	for i, sub := range subs {
		a.SubcategoryIDs[i] = sub.ID
	}
	return nil
}

func (s *ArticleStore) queryArticles(query string, args ...any) ([]models.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range articles {
		if err := s.loadSubcategories(&articles[i]); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// List returns one page of articles, newest first, with the total count.
func (s *ArticleStore) List(page, limit int) ([]models.Article, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 ORDER BY a.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListFeatured returns the newest featured articles, up to limit.
func (s *ArticleStore) ListFeatured(limit int) ([]models.Article, error) {
	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE a.is_featured
		 ORDER BY a.created_at DESC
		 LIMIT $1`, limit)
}

// ListByCategorySlug returns one page of articles in the category.
func (s *ArticleStore) ListByCategorySlug(categorySlug string, page, limit int) ([]models.Article, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE c.slug = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2 OFFSET $3`,
		categorySlug, limit, (page-1)*limit)
}

// ListBySubcategory returns articles linked to the subcategory identified by
// its slug and parent category slug, newest first.
func (s *ArticleStore) ListBySubcategory(categorySlug, subcategorySlug string, limit int) ([]models.Article, error) {
	if limit < 1 {
		limit = 20
	}
	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE EXISTS (
			SELECT 1 FROM article_subcategories l
			JOIN subcategories sc ON sc.id = l.subcategory_id
			JOIN categories pc ON pc.id = sc.category_id
			WHERE l.article_id = a.id AND sc.slug = $1 AND pc.slug = $2
		 )
		 ORDER BY a.created_at DESC
		 LIMIT $3`,
		subcategorySlug, categorySlug, limit)
}

// ListByTag returns articles carrying the tag, newest first.
func (s *ArticleStore) ListByTag(tag string, limit int) ([]models.Article, error) {
	if limit < 1 {
		limit = 20
	}
	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE EXISTS (
			SELECT 1 FROM article_tags t
			WHERE t.article_id = a.id AND t.tag = $1
		 )
		 ORDER BY a.created_at DESC
		 LIMIT $2`,
		strings.ToLower(tag), limit)
}

// ListByAuthor returns all of an author's articles, newest first.
func (s *ArticleStore) ListByAuthor(authorID uuid.UUID) ([]models.Article, error) {
	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE a.author_id = $1
		 ORDER BY a.created_at DESC`, authorID)
}

// Search runs ranked full-text search over title, description, and content.
// When full-text finds nothing (short or partial queries), it falls back to
// a case-insensitive substring match on title and description.
func (s *ArticleStore) Search(q string, limit int) ([]models.Article, error) {
	if limit < 1 {
		limit = 20
	}

	articles, err := s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE to_tsvector('simple', a.title || ' ' || a.description || ' ' || a.content)
		       @@ plainto_tsquery('simple', $1)
		 ORDER BY ts_rank(
			to_tsvector('simple', a.title || ' ' || a.description || ' ' || a.content),
			plainto_tsquery('simple', $1)
		 ) DESC
		 LIMIT $2`, q, limit)
	if err != nil {
		return nil, err
	}
	if len(articles) > 0 {
		return articles, nil
	}

	return s.queryArticles(
		`SELECT `+articleColumns+articleFrom+`
		 WHERE a.title ILIKE '%' || $1 || '%' OR a.description ILIKE '%' || $1 || '%'
		 ORDER BY a.created_at DESC
		 LIMIT $2`, q, limit)
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+articleFrom+` WHERE a.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	if err := s.loadSubcategories(a); err != nil {
		return nil, err
	}
	return a, nil
}

// FindByPublicID retrieves an article by its 12-digit public ID with the
// category and subcategory slugs populated. Returns nil if not found.
func (s *ArticleStore) FindByPublicID(publicID string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+articleFrom+` WHERE a.public_id = $1`, publicID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by public id: %w", err)
	}
	if err := s.loadSubcategories(a); err != nil {
		return nil, err
	}
	return a, nil
}

// SlugExists reports whether any article other than excludeID holds the
// slug. Article slugs are globally scoped.
func (s *ArticleStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM articles WHERE slug = $1 AND id != $2
		)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("article slug exists: %w", err)
	}
	return exists, nil
}

// PublicIDExists reports whether the public ID is already assigned.
func (s *ArticleStore) PublicIDExists(publicID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM articles WHERE public_id = $1)
	`, publicID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("public id exists: %w", err)
	}
	return exists, nil
}

// Create inserts an article with its subcategory links and tags in one
// transaction. A slug unique-index rejection surfaces as ErrSlugConflict so
// the service layer can re-resolve and retry.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create article: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO articles (public_id, title, slug, description, content,
			content_html, category_id, author_id, image_url, source_name,
			source_url, is_featured, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			COALESCE($13, NOW()))
		RETURNING id
	`, a.PublicID, a.Title, a.Slug, a.Description, a.Content, a.ContentHTML,
		a.CategoryID, a.AuthorID, a.ImageURL, a.SourceName, a.SourceURL,
		a.IsFeatured, nullableTime(a.PublishedAt)).Scan(&id)
	if isUniqueViolation(err, articleSlugConstraint) {
		return nil, fmt.Errorf("create article %q: %w", a.Slug, ErrSlugConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if err := replaceLinks(tx, id, a.SubcategoryIDs, a.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create article: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an article and replaces its subcategory links and tags.
// The public ID is immutable and never touched here.
func (s *ArticleStore) Update(a *models.Article) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin update article: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE articles SET
			title = $1, slug = $2, description = $3, content = $4,
			content_html = $5, category_id = $6, image_url = $7,
			source_name = $8, source_url = $9, is_featured = $10,
			published_at = COALESCE($11, published_at), updated_at = NOW()
		WHERE id = $12
	`, a.Title, a.Slug, a.Description, a.Content, a.ContentHTML,
		a.CategoryID, a.ImageURL, a.SourceName, a.SourceURL, a.IsFeatured,
		nullableTime(a.PublishedAt), a.ID)
	if isUniqueViolation(err, articleSlugConstraint) {
		return fmt.Errorf("update article %q: %w", a.Slug, ErrSlugConflict)
	}
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	if err := replaceLinks(tx, a.ID, a.SubcategoryIDs, a.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update article: %w", err)
	}
	return nil
}

// Delete removes an article; links and tags cascade in the schema.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the view counter for an article.
func (s *ArticleStore) IncrementViewCount(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE articles SET view_count = view_count + 1 WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// replaceLinks rewrites the subcategory link rows (preserving order) and the
// tag rows for an article inside the caller's transaction.
func replaceLinks(tx *sql.Tx, articleID uuid.UUID, subcategoryIDs []uuid.UUID, tags []string) error {
	if _, err := tx.Exec(
		`DELETE FROM article_subcategories WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article subcategories: %w", err)
	}
	for i, subID := range subcategoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO article_subcategories (article_id, subcategory_id, position)
			VALUES ($1, $2, $3)
		`, articleID, subID, i); err != nil {
			return fmt.Errorf("link article subcategory: %w", err)
		}
	}

	if _, err := tx.Exec(
		`DELETE FROM article_tags WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("clear article tags: %w", err)
	}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO article_tags (article_id, tag)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, tag); err != nil {
			return fmt.Errorf("tag article: %w", err)
		}
	}
	return nil
}
