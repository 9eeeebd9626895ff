// Package community es el feed de la comunidad: un servicio mock que vive
// solo en memoria del proceso y se resetea al reiniciar.
package community

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPostNotFound = errors.New("post not found")
)

type Options struct {
	// Latency simula la red: cada llamada espera esto antes de resolver.
	Latency time.Duration
	// Seed carga los usuarios y posts de ejemplo.
	Seed bool
	Now  func() time.Time
}

// Store es la base mock de la comunidad. La crea cmd/api y se inyecta
// en el router; no hay estado a nivel de paquete.
type Store struct {
	mu       sync.Mutex
	latency  time.Duration
	now      func() time.Time
	users    map[string]User
	userIDs  []string
	posts    map[string]*postState
	comments map[string][]Comment
}

type postState struct {
	post      Post
	reactions map[string]Interaction // viewerID -> reacción
}

func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	s := &Store{
		latency:  opts.Latency,
		now:      now,
		users:    map[string]User{},
		posts:    map[string]*postState{},
		comments: map[string][]Comment{},
	}
	if opts.Seed {
		s.seed()
	}
	return s
}

// wait aplica la latencia artificial respetando la cancelación del request.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, 0, len(s.userIDs))
	for _, id := range s.userIDs {
		out = append(out, s.users[id])
	}
	return out, nil
}

// User devuelve el autor si es uno de los usuarios conocidos del feed.
func (s *Store) User(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// ListPosts devuelve el feed, más nuevos primero, visto por viewerID.
func (s *Store) ListPosts(ctx context.Context, viewerID string) ([]Post, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Post, 0, len(s.posts))
	for _, ps := range s.posts {
		out = append(out, ps.viewAs(viewerID))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetPost(ctx context.Context, postID, viewerID string) (Post, error) {
	if err := s.wait(ctx); err != nil {
		return Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ps, ok := s.posts[postID]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return ps.viewAs(viewerID), nil
}

type CreatePostInput struct {
	Content  string
	ImageURI string
}

func (s *Store) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (Post, error) {
	authorID = strings.TrimSpace(authorID)
	content := strings.TrimSpace(in.Content)
	if authorID == "" {
		return Post{}, fmt.Errorf("%w: author required", ErrInvalidInput)
	}
	if content == "" && strings.TrimSpace(in.ImageURI) == "" {
		return Post{}, fmt.Errorf("%w: content or image required", ErrInvalidInput)
	}
	if err := s.wait(ctx); err != nil {
		return Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		ImageURI:  strings.TrimSpace(in.ImageURI),
		CreatedAt: s.now(),
	}
	s.posts[p.ID] = &postState{post: p, reactions: map[string]Interaction{}}
	return s.posts[p.ID].viewAs(authorID), nil
}

// AddComment agrega el comentario y suma uno al contador del post.
func (s *Store) AddComment(ctx context.Context, postID, authorID, text string) (Comment, error) {
	authorID = strings.TrimSpace(authorID)
	text = strings.TrimSpace(text)
	if authorID == "" || text == "" {
		return Comment{}, fmt.Errorf("%w: author and text required", ErrInvalidInput)
	}
	if err := s.wait(ctx); err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ps, ok := s.posts[postID]
	if !ok {
		return Comment{}, ErrPostNotFound
	}
	c := Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.now(),
	}
	s.comments[postID] = append(s.comments[postID], c)
	ps.post.Comments++
	return c, nil
}

// ListComments devuelve los comentarios en orden de llegada.
func (s *Store) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, ErrPostNotFound
	}
	out := make([]Comment, len(s.comments[postID]))
	copy(out, s.comments[postID])
	return out, nil
}

// Interact aplica like/dislike del viewer con semántica de toggle.
func (s *Store) Interact(ctx context.Context, postID, viewerID string, requested Interaction) (Post, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return Post{}, fmt.Errorf("%w: viewer required", ErrInvalidInput)
	}
	if !requested.Valid() {
		return Post{}, fmt.Errorf("%w: interaction must be like or dislike", ErrInvalidInput)
	}
	if err := s.wait(ctx); err != nil {
		return Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ps, ok := s.posts[postID]
	if !ok {
		return Post{}, ErrPostNotFound
	}

	current := ps.current(viewerID)
	counters, next := Toggle(ps.post.Counters, current, requested)
	ps.post.Counters = counters
	if next == InteractionNone {
		delete(ps.reactions, viewerID)
	} else {
		ps.reactions[viewerID] = next
	}
	return ps.viewAs(viewerID), nil
}

func (ps *postState) current(viewerID string) Interaction {
	if i, ok := ps.reactions[viewerID]; ok {
		return i
	}
	return InteractionNone
}

func (ps *postState) viewAs(viewerID string) Post {
	p := ps.post
	p.Viewer = ps.current(viewerID)
	return p
}
