package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/migrations"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) *sqlx.DB {
	t.Helper()
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.MigrateUp(db.DB))

	return db
}

func mustCreateUser(t *testing.T, repo *UserWriteRepository, username string) *models.UserDB {
	t.Helper()
	user, err := repo.Create(context.Background(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return user
}

func postBodies(posts []models.PostDB) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Body
	}
	return out
}

func TestPostgres_UserRepositories(t *testing.T) {
	db := setupPostgresContainer(t)
	ctx := context.Background()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)

	john := mustCreateUser(t, writeRepo, "john")

	t.Run("duplicate username", func(t *testing.T) {
		_, err := writeRepo.Create(ctx, "john", "other@example.com", "hash")
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := writeRepo.Create(ctx, "other", "john@example.com", "hash")
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("lookup by username or email", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "nobody", "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, john.ID, user.ID)

		user, err = readRepo.GetByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("update profile and password", func(t *testing.T) {
		about := "hi there"
		require.NoError(t, writeRepo.UpdateProfile(ctx, john.ID, "johnny", &about))
		require.NoError(t, writeRepo.SetPassword(ctx, john.ID, "new-hash"))

		user, err := readRepo.GetByID(ctx, john.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "johnny", user.Username)
		assert.Equal(t, "hi there", *user.AboutMe)
		assert.Equal(t, "new-hash", *user.PasswordHash)
	})

	t.Run("rename onto a taken username", func(t *testing.T) {
		mustCreateUser(t, writeRepo, "susan")
		err := writeRepo.UpdateProfile(ctx, john.ID, "susan", nil)
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})
}

func TestPostgres_FeedScenario(t *testing.T) {
	db := setupPostgresContainer(t)
	ctx := context.Background()

	users := NewUserWriteRepository(db, nil)
	followWrite := NewFollowWriteRepository(db, nil)
	followRead := NewFollowReadRepository(db, nil)
	postWrite := NewPostWriteRepository(db, nil)
	postRead := NewPostReadRepository(db, nil)

	john := mustCreateUser(t, users, "john")
	susan := mustCreateUser(t, users, "susan")
	mary := mustCreateUser(t, users, "mary")
	david := mustCreateUser(t, users, "david")

	for _, p := range []struct {
		author *models.UserDB
		body   string
	}{
		{john, "post from john"},
		{susan, "post from susan"},
		{mary, "post from mary"},
		{david, "post from david"},
	} {
		_, err := postWrite.Create(ctx, p.author.ID, p.body)
		require.NoError(t, err)
	}

	require.NoError(t, followWrite.Follow(ctx, john.ID, susan.ID))
	require.NoError(t, followWrite.Follow(ctx, john.ID, david.ID))
	require.NoError(t, followWrite.Follow(ctx, susan.ID, mary.ID))
	require.NoError(t, followWrite.Follow(ctx, mary.ID, david.ID))
	// Repeating an edge must not duplicate it.
	require.NoError(t, followWrite.Follow(ctx, john.ID, susan.ID))

	feeds := map[string]struct {
		user *models.UserDB
		want []string
	}{
		"john":  {john, []string{"post from david", "post from susan", "post from john"}},
		"susan": {susan, []string{"post from mary", "post from susan"}},
		"mary":  {mary, []string{"post from david", "post from mary"}},
		"david": {david, []string{"post from david"}},
	}
	for name, f := range feeds {
		t.Run("feed of "+name, func(t *testing.T) {
			posts, err := postRead.ListFeed(ctx, f.user.ID, 26, 0)
			require.NoError(t, err)
			assert.Equal(t, f.want, postBodies(posts))
		})
	}

	t.Run("counts", func(t *testing.T) {
		n, err := followRead.FollowingCount(ctx, john.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = followRead.FollowersCount(ctx, david.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, followWrite.Unfollow(ctx, john.ID, susan.ID))
		require.NoError(t, followWrite.Unfollow(ctx, john.ID, susan.ID))

		ok, err := followRead.IsFollowing(ctx, john.ID, susan.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		posts, err := postRead.ListFeed(ctx, john.ID, 26, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"post from david", "post from john"}, postBodies(posts))
	})

	t.Run("explore and author listing", func(t *testing.T) {
		posts, err := postRead.ListAll(ctx, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"post from david", "post from mary"}, postBodies(posts))

		posts, err = postRead.ListAll(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"post from susan", "post from john"}, postBodies(posts))

		posts, err = postRead.ListByAuthor(ctx, susan.ID, 26, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"post from susan"}, postBodies(posts))
	})
}
