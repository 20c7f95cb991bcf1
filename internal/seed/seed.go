// Package seed fills a development database with fake users, posts and
// follow edges.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// UserRegistrar creates accounts.
type UserRegistrar interface {
	Register(ctx context.Context, username, email, password string) (*models.UserDB, error)
}

// PostAuthor publishes posts.
type PostAuthor interface {
	CreatePost(ctx context.Context, authorID int64, body string) (*models.PostDB, error)
}

// Follower adds follow edges.
type Follower interface {
	Follow(ctx context.Context, followerID, followedID int64) error
}

// Options sizes the generated data set.
type Options struct {
	Users          int
	PostsPerUser   int
	FollowsPerUser int
	Password       string
	Seed           int64
}

// Result counts what was created.
type Result struct {
	Users   int
	Posts   int
	Follows int
}

// Seeder generates the data through the services so every invariant holds.
type Seeder struct {
	users UserRegistrar
	posts PostAuthor
	graph Follower
	opts  Options
	faker *gofakeit.Faker
}

// New creates a Seeder. A zero Seed gives a random data set.
func New(users UserRegistrar, posts PostAuthor, graph Follower, opts Options) *Seeder {
	if opts.Password == "" {
		opts.Password = "password123"
	}
	return &Seeder{
		users: users,
		posts: posts,
		graph: graph,
		opts:  opts,
		faker: gofakeit.New(opts.Seed),
	}
}

const maxUsernameAttempts = 5

// Run creates the users, then their posts, then the follow edges.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	created := make([]*models.UserDB, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.createUser(ctx)
		if err != nil {
			return res, err
		}
		created = append(created, user)
		res.Users++
	}

	for _, user := range created {
		for j := 0; j < s.opts.PostsPerUser; j++ {
			if _, err := s.posts.CreatePost(ctx, user.ID, s.postBody()); err != nil {
				return res, fmt.Errorf("create post for %s: %w", user.Username, err)
			}
			res.Posts++
		}
	}

	if len(created) < 2 {
		return res, nil
	}
	for _, user := range created {
		for j := 0; j < s.opts.FollowsPerUser; j++ {
			target := created[s.faker.Number(0, len(created)-1)]
			if target.ID == user.ID {
				continue
			}
			if err := s.graph.Follow(ctx, user.ID, target.ID); err != nil {
				return res, fmt.Errorf("follow %s -> %s: %w", user.Username, target.Username, err)
			}
			res.Follows++
		}
	}

	logger.Log.Infow("seed finished", "users", res.Users, "posts", res.Posts, "follows", res.Follows)
	return res, nil
}

func (s *Seeder) createUser(ctx context.Context) (*models.UserDB, error) {
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		username := strings.ToLower(s.faker.Username())
		if attempt > 0 {
			username = fmt.Sprintf("%s%d", username, s.faker.Number(100, 9999))
		}
		if len(username) > 64 {
			username = username[:64]
		}
		email := fmt.Sprintf("%s@%s", username, s.faker.DomainName())

		user, err := s.users.Register(ctx, username, email, s.opts.Password)
		if errors.Is(err, services.ErrUserAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", username, err)
		}
		return user, nil
	}
	return nil, fmt.Errorf("no free username after %d attempts", maxUsernameAttempts)
}

func (s *Seeder) postBody() string {
	body := s.faker.Sentence(s.faker.Number(3, 20))
	if utf8.RuneCountInString(body) > models.MaxPostLength {
		body = string([]rune(body)[:models.MaxPostLength])
	}
	return strings.TrimSpace(body)
}
