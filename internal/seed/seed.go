package seed

import (
	"fmt"
	"log"
	"strings"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
	// SkipBcrypt stores a plaintext password instead of hashing. Much
	// faster for large dev datasets; never use outside local development.
	SkipBcrypt bool
	// MaxDays bounds how far back generated post timestamps reach.
	MaxDays int
}

var groupCatalog = []struct {
	Title string
	Slug  string
}{
	{"General", "general"},
	{"Technology", "technology"},
	{"Books", "books"},
	{"Travel", "travel"},
	{"Food", "food"},
	{"Music", "music"},
	{"Photography", "photography"},
	{"Science", "science"},
	{"History", "history"},
	{"Poetry", "poetry"},
}

// Run populates the database with users, groups, posts, comments and a
// follow mesh. It is idempotent only when ShouldClean is set.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}
	if opts.NumComments <= 0 {
		opts.NumComments = opts.NumPosts * 2
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	groups, err := createGroups(factory)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("✓ %d groups created", len(groups))

	posts, err := createPosts(factory, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createComments(factory, users, posts, opts.NumComments); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", opts.NumComments)

	edges, err := createFollowMesh(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", edges)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few well-known accounts for manual testing.
	if count >= 3 {
		for _, name := range []string{"leo", "mina", "test"} {
			name := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			// Username collisions are possible with generated data.
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				continue
			}
			return nil, err
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func createGroups(f *Factory) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(groupCatalog))
	for _, entry := range groupCatalog {
		group, err := f.CreateGroup(entry.Title, entry.Slug)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func createPosts(f *Factory, users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rand.Intn(len(users))]
		post := f.BuildPost(author, func(p *models.Post) {
			// Roughly 60% of posts land in a group; the rest stay loose.
			if len(groups) > 0 && f.rand.Float32() < 0.6 {
				groupID := groups[f.rand.Intn(len(groups))].ID
				p.GroupID = &groupID
			}
		})
		posts = append(posts, post)
	}

	// Batch insert in chunks to keep statements bounded.
	const chunk = 100
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := f.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post, count int) error {
	for i := 0; i < count; i++ {
		author := users[f.rand.Intn(len(users))]
		post := posts[f.rand.Intn(len(posts))]
		if _, err := f.CreateComment(author, post); err != nil {
			return err
		}
	}
	return nil
}

// createFollowMesh gives every user a handful of authors to follow so the
// personal feed has content out of the box.
func createFollowMesh(f *Factory, users []*models.User) (int, error) {
	edges := 0
	for _, user := range users {
		want := f.rand.Intn(6) + 2
		for i := 0; i < want; i++ {
			author := users[f.rand.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := f.CreateFollow(user, author); err != nil {
				return edges, err
			}
			edges++
		}
	}
	return edges, nil
}
