package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BlogStore handles database operations for blog posts
type BlogStore struct {
	db *DB
}

var _ BlogRepository = (*BlogStore)(nil)

func NewBlogStore(db *DB) *BlogStore {
	return &BlogStore{db: db}
}

func (r *BlogStore) CreateBlog(title, author, content string) (*Blog, error) {
	blog := &Blog{
		ID:        uuid.NewString(),
		Title:     title,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(`
		INSERT INTO blogs (id, title, author, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, blog.ID, blog.Title, blog.Author, blog.Content, blog.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	return blog, nil
}

func (r *BlogStore) GetBlogs() ([]Blog, error) {
	rows, err := r.db.Query(`
		SELECT id, title, author, content, created_at
		FROM blogs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get blogs: %w", err)
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.Content, &blog.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *BlogStore) GetBlogCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get blog count: %w", err)
	}
	return count, nil
}
