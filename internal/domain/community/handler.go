package community

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/community", func(cr chi.Router) {
		cr.Get("/users", listUsersHandler(store))

		cr.Get("/posts", listPostsHandler(store))
		cr.Post("/posts", createPostHandler(store))
		cr.Get("/posts/{postID}", getPostHandler(store))
		cr.Post("/posts/{postID}/interaction", interactHandler(store))

		cr.Get("/posts/{postID}/comments", listCommentsHandler(store))
		cr.Post("/posts/{postID}/comments", addCommentHandler(store))
	})
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURI string `json:"avatar_uri,omitempty"`
}

type postResponse struct {
	ID           string       `json:"id"`
	Author       userResponse `json:"author"`
	Content      string       `json:"content"`
	ImageURI     string       `json:"image_uri,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	Likes        int          `json:"likes"`
	Dislikes     int          `json:"dislikes"`
	CommentCount int          `json:"comment_count"`
	Interaction  Interaction  `json:"user_interaction" enums:"like,dislike,none"`
}

type commentResponse struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	Author    userResponse `json:"author"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURI string `json:"image_uri"`
}

type interactionRequest struct {
	Interaction Interaction `json:"interaction" enums:"like,dislike"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// listUsersHandler godoc
// @Summary Usuarios de la comunidad
// @Tags community
// @Produce json
// @Success 200 {array} userResponse
// @Router /community/users [get]
func listUsersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := store.ListUsers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]userResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listPostsHandler godoc
// @Summary Feed de la comunidad
// @Description Posts más nuevos primero, con la interacción del usuario autenticado.
// @Tags community
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} postResponse
// @Failure 401 {string} string "unauthorized"
// @Router /community/posts [get]
func listPostsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := viewer(w, r)
		if !ok {
			return
		}
		posts, err := store.ListPosts(r.Context(), viewerID)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]postResponse, 0, len(posts))
		for _, p := range posts {
			out = append(out, toPostResponse(store, p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPostHandler godoc
// @Summary Publicar en la comunidad
// @Tags community
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPostRequest true "Contenido del post"
// @Success 201 {object} postResponse
// @Failure 400 {string} string "invalid json / contenido vacío"
// @Failure 401 {string} string "unauthorized"
// @Router /community/posts [post]
func createPostHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := viewer(w, r)
		if !ok {
			return
		}
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		p, err := store.CreatePost(r.Context(), viewerID, CreatePostInput{
			Content:  req.Content,
			ImageURI: req.ImageURI,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPostResponse(store, p))
	}
}

// getPostHandler godoc
// @Summary Ver post
// @Tags community
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param postID path string true "ID del post"
// @Success 200 {object} postResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "post not found"
// @Router /community/posts/{postID} [get]
func getPostHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := viewer(w, r)
		if !ok {
			return
		}
		p, err := store.GetPost(r.Context(), chi.URLParam(r, "postID"), viewerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(store, p))
	}
}

// interactHandler godoc
// @Summary Like / dislike
// @Description Repetir la misma reacción la quita; la reacción contraria reemplaza a la anterior.
// @Tags community
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param postID path string true "ID del post"
// @Param payload body interactionRequest true "like o dislike"
// @Success 200 {object} postResponse
// @Failure 400 {string} string "interaction inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "post not found"
// @Router /community/posts/{postID}/interaction [post]
func interactHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := viewer(w, r)
		if !ok {
			return
		}
		var req interactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		p, err := store.Interact(r.Context(), chi.URLParam(r, "postID"), viewerID, req.Interaction)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPostResponse(store, p))
	}
}

// listCommentsHandler godoc
// @Summary Comentarios de un post
// @Tags community
// @Produce json
// @Param postID path string true "ID del post"
// @Success 200 {array} commentResponse
// @Failure 404 {string} string "post not found"
// @Router /community/posts/{postID}/comments [get]
func listCommentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := store.ListComments(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]commentResponse, 0, len(comments))
		for _, c := range comments {
			out = append(out, toCommentResponse(store, c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addCommentHandler godoc
// @Summary Comentar un post
// @Tags community
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param postID path string true "ID del post"
// @Param payload body addCommentRequest true "Texto del comentario"
// @Success 201 {object} commentResponse
// @Failure 400 {string} string "texto vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "post not found"
// @Router /community/posts/{postID}/comments [post]
func addCommentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := viewer(w, r)
		if !ok {
			return
		}
		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		c, err := store.AddComment(r.Context(), chi.URLParam(r, "postID"), viewerID, req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCommentResponse(store, c))
	}
}

func viewer(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

// author resuelve el perfil; usuarios fuera del seed se muestran por su ID.
func author(store *Store, id string) userResponse {
	if u, ok := store.User(id); ok {
		return toUserResponse(u)
	}
	return userResponse{ID: id, Name: id}
}

func toUserResponse(u User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, AvatarURI: u.AvatarURI}
}

func toPostResponse(store *Store, p Post) postResponse {
	return postResponse{
		ID:           p.ID,
		Author:       author(store, p.AuthorID),
		Content:      p.Content,
		ImageURI:     p.ImageURI,
		CreatedAt:    p.CreatedAt,
		Likes:        p.Likes,
		Dislikes:     p.Dislikes,
		CommentCount: p.Comments,
		Interaction:  p.Viewer,
	}
}

func toCommentResponse(store *Store, c Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    author(store, c.AuthorID),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPostNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
