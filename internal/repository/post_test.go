package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create_TopLevel(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")

	post := createTestPost(t, db, alice, "first post", "")

	assert.Len(t, post.UID, 8)
	assert.Nil(t, post.ParentID)
	assert.NotZero(t, post.ID)
}

func TestPostRepository_Create_ReplyBumpsParentCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	parent := createTestPost(t, db, alice, "parent", "")
	reply := createTestPost(t, db, bob, "reply", parent.UID)

	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	got, err := NewPostRepository(db).GetByUID(ctx, parent.UID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReplyCount)

	createTestPost(t, db, alice, "second reply", parent.UID)
	got, err = NewPostRepository(db).GetByUID(ctx, parent.UID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReplyCount)
}

func TestPostRepository_Create_MissingParentLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: alice.ID, Body: "orphan reply"}
	err := repo.Create(ctx, post, "zzzzzzzz")
	assertAppErrorCode(t, err, models.CodeNotFound)

	// The failed create must not leave a row behind.
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostRepository_Create_DeletedParentRejected(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	repo := NewPostRepository(db)
	ctx := context.Background()

	parent := createTestPost(t, db, alice, "parent", "")
	require.NoError(t, db.Model(&models.Post{}).
		Where("id = ?", parent.ID).
		UpdateColumn("deleted", true).Error)

	post := &models.Post{UserID: alice.ID, Body: "reply to dead post"}
	err := repo.Create(ctx, post, parent.UID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostRepository_GetByUID_LikedFlag(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, db, alice, "likeable", "")
	_, err := NewLikeRepository(db).Like(ctx, bob.ID, post.UID)
	require.NoError(t, err)

	got, err := repo.GetByUID(ctx, post.UID, bob.ID)
	require.NoError(t, err)
	assert.True(t, got.Liked)
	assert.Equal(t, "alice", got.User.Username)

	got, err = repo.GetByUID(ctx, post.UID, alice.ID)
	require.NoError(t, err)
	assert.False(t, got.Liked)

	// Anonymous readers never see a liked flag.
	got, err = repo.GetByUID(ctx, post.UID, 0)
	require.NoError(t, err)
	assert.False(t, got.Liked)
}

func TestPostRepository_GetByUID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByUID(context.Background(), "missing1", 0)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostRepository_ListTopLevel_ExcludesReplies(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	repo := NewPostRepository(db)
	ctx := context.Background()

	first := createTestPost(t, db, alice, "first", "")
	createTestPost(t, db, alice, "a reply", first.UID)
	createTestPost(t, db, alice, "second", "")

	posts, err := repo.ListTopLevel(ctx, 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Nil(t, p.ParentID)
		assert.NotEmpty(t, p.User.Username)
	}
}

func TestPostRepository_ListReplies(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	repo := NewPostRepository(db)
	ctx := context.Background()

	parent := createTestPost(t, db, alice, "parent", "")
	createTestPost(t, db, alice, "r1", parent.UID)
	createTestPost(t, db, alice, "r2", parent.UID)

	replies, err := repo.ListReplies(ctx, parent.UID, 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, replies, 2)

	_, err = repo.ListReplies(ctx, "missing1", 20, 0, 0)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostRepository_UIDsAreUnique(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		post := createTestPost(t, db, alice, "post", "")
		require.False(t, seen[post.UID], "duplicate uid %s", post.UID)
		seen[post.UID] = true
	}
}

// Replies landing at the same time must each bump the parent's counter; the
// in-transaction "reply_count + 1" expression leaves no window for a lost
// update.
func TestPostRepository_ConcurrentRepliesKeepCounter(t *testing.T) {
	t.Parallel()

	db := setupFileTestDB(t)
	alice := createTestUser(t, db, "alice")
	repo := NewPostRepository(db)
	ctx := context.Background()

	parent := createTestPost(t, db, alice, "busy thread", "")

	const replies = 8
	var wg sync.WaitGroup
	errs := make(chan error, replies)
	for i := 0; i < replies; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reply := &models.Post{UserID: alice.ID, Body: fmt.Sprintf("reply %d", i)}
			errs <- repo.Create(ctx, reply, parent.UID)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByUID(ctx, parent.UID, 0)
	require.NoError(t, err)
	assert.Equal(t, replies, got.ReplyCount)

	var rows int64
	require.NoError(t, db.Model(&models.Post{}).
		Where("parent_id = ?", parent.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(replies), rows)
}
