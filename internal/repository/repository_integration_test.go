//go:build integration

package repository

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/database"
	"Pinwall/internal/pkg/util"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("pinwall"),
		postgres.WithUsername("pinwall"),
		postgres.WithPassword("pinwall"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Printf("failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testDB, err = database.NewGormDB(&config.DBConfig{
		Driver:      database.DriverPostgres,
		DSN:         dsn,
		MaxIdle:     5,
		MaxOpen:     20,
		MaxLifetime: 5,
		AutoMigrate: true,
	})
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err = pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("failed to terminate container: %v\n", err)
	}
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec(
		"TRUNCATE post_tags, tags, likes, share_logs, sessions, posts, users RESTART IDENTITY CASCADE",
	).Error)
}

func seedUser(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, NewUserRepo(testDB).UpsertUser(context.Background(), &model.User{
		ID:        id,
		Email:     util.PtrString(id + "@example.com"),
		FirstName: util.PtrString("First " + id),
	}))
}

func seedPost(t *testing.T, userID, title, hashtags string, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:    userID,
		Title:     title,
		Hashtags:  util.PtrString(hashtags),
		ImageURL:  "/uploads/" + title + ".png",
		CreatedAt: createdAt,
	}
	require.NoError(t, NewPostRepository(testDB).CreatePostWithTags(context.Background(), post, util.SplitHashtags(hashtags)))
	return post
}

func TestListPostsOrderingAndLimit(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPost(t, "u1", fmt.Sprintf("post-%d", i), "", base.Add(time.Duration(i)*time.Minute))
	}

	repo := NewPostRepository(testDB)
	posts, err := repo.ListPosts(context.Background(), PostQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post-4", posts[0].Title)
	assert.Equal(t, "post-3", posts[1].Title)
	assert.Equal(t, "post-2", posts[2].Title)

	page, err := repo.ListPosts(context.Background(), PostQuery{Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "post-1", page[0].Title)

	empty, err := repo.ListPosts(context.Background(), PostQuery{Limit: 3, Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListPostsSearchAndOwner(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	seedUser(t, "u2")
	now := time.Now()
	seedPost(t, "u1", "Sunset at the beach", "travel", now)
	seedPost(t, "u2", "sunrise", "Beach,morning", now.Add(time.Second))
	seedPost(t, "u2", "100% cotton", "", now.Add(2*time.Second))
	seedPost(t, "u1", "1000 cotton", "", now.Add(3*time.Second))

	repo := NewPostRepository(testDB)
	ctx := context.Background()

	hits, err := repo.ListPosts(ctx, PostQuery{Limit: 20, Search: "beach"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Sunset at the beach", hits[0].Title)

	hits, err = repo.ListPosts(ctx, PostQuery{Limit: 20, Search: "Beach"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "sunrise", hits[0].Title)

	hits, err = repo.ListPosts(ctx, PostQuery{Limit: 20, Search: "0%"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "100% cotton", hits[0].Title)

	all, err := repo.ListPosts(ctx, PostQuery{Limit: 20})
	require.NoError(t, err)
	mine, err := repo.ListPosts(ctx, PostQuery{Limit: 20, OwnerID: "u1", Search: "cotton"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "1000 cotton", mine[0].Title)
	assert.LessOrEqual(t, len(mine), len(all))
}

func TestToggleLikeRoundTrip(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	seedUser(t, "u2")
	post := seedPost(t, "u1", "p", "", time.Now())

	repo := NewPostActionRepo(testDB)
	ctx := context.Background()

	liked, count, err := repo.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	ids, err := repo.GetLikedPostIDs(ctx, "u2", []uint64{post.ID, post.ID + 100})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]bool{post.ID: true}, ids)

	stats, err := NewPostRepository(testDB).GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.LikesCount)

	liked, count, err = repo.ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeConcurrent(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	post := seedPost(t, "u1", "p", "", time.Now())

	repo := NewPostActionRepo(testDB)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = repo.ToggleLike(context.Background(), "u1", post.ID)
		}()
	}
	wg.Wait()

	count, err := repo.CountLikes(context.Background(), post.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))
}

func TestDeletePostCascade(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	seedUser(t, "u2")
	post := seedPost(t, "u1", "p", "a,b", time.Now())
	ctx := context.Background()

	_, _, err := NewPostActionRepo(testDB).ToggleLike(ctx, "u2", post.ID)
	require.NoError(t, err)
	require.NoError(t, NewPostActionRepo(testDB).CreateShareLog(ctx, &model.ShareLog{PostID: post.ID, ShareType: "copy_link"}))

	repo := NewPostRepository(testDB)
	deleted, err := repo.DeletePost(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/p.png", deleted.ImageURL)

	_, err = repo.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var likes, links, shares int64
	testDB.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	testDB.Model(&model.PostTag{}).Where("post_id = ?", post.ID).Count(&links)
	testDB.Model(&model.ShareLog{}).Where("post_id = ?", post.ID).Count(&shares)
	assert.Zero(t, likes)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), shares)

	_, err = repo.DeletePost(ctx, post.ID, "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletePostForbidden(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	seedUser(t, "u2")
	post := seedPost(t, "u1", "p", "", time.Now())
	ctx := context.Background()

	_, err := NewPostRepository(testDB).DeletePost(ctx, post.ID, "u2")
	assert.ErrorIs(t, err, ErrNotOwner)

	exists, err := NewPostRepository(testDB).ExistsPost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTrendingHashtags(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	now := time.Now()
	seedPost(t, "u1", "p1", "a,b", now)
	seedPost(t, "u1", "p2", "a, c", now)
	seedPost(t, "u1", "p3", "a,a", now)

	rows, err := NewTagRepository(testDB).TrendingHashtags(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Name)
	assert.Equal(t, int64(3), rows[0].Count)
	assert.Equal(t, "b", rows[1].Name)
	assert.Equal(t, "c", rows[2].Name)

	top, err := NewTagRepository(testDB).TrendingHashtags(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestUpsertUserOverwrites(t *testing.T) {
	resetTables(t)
	repo := NewUserRepo(testDB)
	ctx := context.Background()

	require.NoError(t, repo.UpsertUser(ctx, &model.User{ID: "sub", FirstName: util.PtrString("Old")}))
	first, err := repo.GetUserByID(ctx, "sub")
	require.NoError(t, err)

	require.NoError(t, repo.UpsertUser(ctx, &model.User{ID: "sub", FirstName: util.PtrString("New")}))
	user, err := repo.GetUserByID(ctx, "sub")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "New", *user.FirstName)
	assert.WithinDuration(t, first.CreatedAt, user.CreatedAt, time.Millisecond)

	missing, err := repo.GetUserByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionExpiry(t *testing.T) {
	resetTables(t)
	seedUser(t, "u1")
	repo := NewSessionRepo(testDB)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateSession(ctx, &model.Session{SID: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.CreateSession(ctx, &model.Session{SID: "dead", UserID: "u1", ExpiresAt: now.Add(-time.Hour)}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	s, err := repo.GetSession(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, s)
	gone, err := repo.GetSession(ctx, "dead")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
