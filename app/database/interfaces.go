package database

type UserRepository interface {
	CreateUser(name, email, passwordHash string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserCount() (int, error)
}

type BlogRepository interface {
	CreateBlog(title, author, content string) (*Blog, error)
	GetBlogs() ([]Blog, error)
	GetBlogCount() (int, error)
}

// LocalStateRepository is the durable key/value storage backing
// client-owned state (bookmarks, signed-in profile).
type LocalStateRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
