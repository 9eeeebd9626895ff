package community

import "time"

// Interaction es la reacción del viewer sobre un post. Mutuamente excluyentes.
// @Enum like, dislike, none
type Interaction string

const (
	InteractionNone    Interaction = "none"
	InteractionLike    Interaction = "like"
	InteractionDislike Interaction = "dislike"
)

func (i Interaction) Valid() bool {
	return i == InteractionLike || i == InteractionDislike
}

type User struct {
	ID        string
	Name      string
	AvatarURI string
}

// Counters son los agregados de un post.
type Counters struct {
	Likes    int
	Dislikes int
	Comments int
}

// Post es la vista de un post para un viewer concreto.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	ImageURI  string // opcional
	CreatedAt time.Time

	Counters

	// Viewer es la interacción actual de quien pidió el post.
	Viewer Interaction
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}
