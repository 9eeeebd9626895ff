package community

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(Options{Seed: true, Now: fixedNow})
}

func TestToggle(t *testing.T) {
	base := Counters{Likes: 3, Dislikes: 1}

	c, i := Toggle(base, InteractionNone, InteractionLike)
	assert.Equal(t, InteractionLike, i)
	assert.Equal(t, Counters{Likes: 4, Dislikes: 1}, c)

	c, i = Toggle(c, i, InteractionLike)
	assert.Equal(t, InteractionNone, i)
	assert.Equal(t, base, c)

	c, i = Toggle(base, InteractionLike, InteractionDislike)
	assert.Equal(t, InteractionDislike, i)
	assert.Equal(t, Counters{Likes: 2, Dislikes: 2}, c)
}

func TestStore_Interact_LikeTwiceRestoresBaseline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetPost(ctx, "post-1", "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, InteractionNone, before.Viewer)

	p, err := s.Interact(ctx, "post-1", "viewer-1", InteractionLike)
	require.NoError(t, err)
	assert.Equal(t, InteractionLike, p.Viewer)
	assert.Equal(t, before.Likes+1, p.Likes)

	p, err = s.Interact(ctx, "post-1", "viewer-1", InteractionLike)
	require.NoError(t, err)
	assert.Equal(t, InteractionNone, p.Viewer)
	assert.Equal(t, before.Likes, p.Likes)
	assert.Equal(t, before.Dislikes, p.Dislikes)
}

func TestStore_Interact_LikeThenDislike(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetPost(ctx, "post-2", "viewer-1")
	require.NoError(t, err)

	_, err = s.Interact(ctx, "post-2", "viewer-1", InteractionLike)
	require.NoError(t, err)
	p, err := s.Interact(ctx, "post-2", "viewer-1", InteractionDislike)
	require.NoError(t, err)

	assert.Equal(t, InteractionDislike, p.Viewer)
	assert.Equal(t, before.Likes, p.Likes)
	assert.Equal(t, before.Dislikes+1, p.Dislikes)
}

func TestStore_Interact_IsPerViewer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Interact(ctx, "post-3", "viewer-1", InteractionLike)
	require.NoError(t, err)

	other, err := s.GetPost(ctx, "post-3", "viewer-2")
	require.NoError(t, err)
	assert.Equal(t, InteractionNone, other.Viewer)

	// el seed ya tiene el like de user-luna: repetirlo lo quita
	p, err := s.Interact(ctx, "post-3", "user-luna", InteractionLike)
	require.NoError(t, err)
	assert.Equal(t, InteractionNone, p.Viewer)
	assert.Equal(t, 1, p.Likes)
}

func TestStore_Interact_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Interact(ctx, "post-1", "viewer-1", InteractionNone)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Interact(ctx, "post-1", "", InteractionLike)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Interact(ctx, "missing", "viewer-1", InteractionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStore_ListPosts_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePost(ctx, "viewer-1", CreatePostInput{Content: "Hola comunidad"})
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx, "viewer-1")
	require.NoError(t, err)
	require.Len(t, posts, 4)

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{created.ID, "post-1", "post-2", "post-3"}, ids)
}

func TestStore_Comments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetPost(ctx, "post-3", "viewer-1")
	require.NoError(t, err)

	c, err := s.AddComment(ctx, "post-3", "viewer-1", " ¡Bien ahí Kira! ")
	require.NoError(t, err)
	assert.Equal(t, "¡Bien ahí Kira!", c.Text)

	after, err := s.GetPost(ctx, "post-3", "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, before.Comments+1, after.Comments)

	comments, err := s.ListComments(ctx, "post-3")
	require.NoError(t, err)
	require.Len(t, comments, after.Comments)
	assert.Equal(t, c.ID, comments[len(comments)-1].ID)

	_, err = s.AddComment(ctx, "post-3", "viewer-1", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.ListComments(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestStore_SeedCountersMatchReactions(t *testing.T) {
	s := newTestStore(t)

	for id, ps := range s.posts {
		var likes, dislikes int
		for _, i := range ps.reactions {
			switch i {
			case InteractionLike:
				likes++
			case InteractionDislike:
				dislikes++
			}
		}
		assert.Equal(t, likes, ps.post.Likes, id)
		assert.Equal(t, dislikes, ps.post.Dislikes, id)
		assert.Equal(t, len(s.comments[id]), ps.post.Comments, id)
	}
}

func TestStore_Latency_HonoursCancellation(t *testing.T) {
	s := NewStore(Options{Latency: time.Hour, Seed: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListPosts(ctx, "viewer-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentInteractionsKeepCountersConsistent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetPost(ctx, "post-2", "nobody")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			viewerID := fmt.Sprintf("viewer-%d", n)
			_, _ = s.Interact(ctx, "post-2", viewerID, InteractionLike)
			if n%2 == 0 {
				_, _ = s.Interact(ctx, "post-2", viewerID, InteractionDislike)
			}
		}(n)
	}
	wg.Wait()

	after, err := s.GetPost(ctx, "post-2", "nobody")
	require.NoError(t, err)
	assert.Equal(t, before.Likes+25, after.Likes)
	assert.Equal(t, before.Dislikes+25, after.Dislikes)
}
