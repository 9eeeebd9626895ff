package community

import (
	"strconv"
	"time"
)

var seedUsers = []User{
	{ID: "user-luna", Name: "Camila Rojas", AvatarURI: "https://i.pravatar.cc/150?img=47"},
	{ID: "user-toby", Name: "Martín Gómez", AvatarURI: "https://i.pravatar.cc/150?img=12"},
	{ID: "user-kira", Name: "Valentina Soto", AvatarURI: "https://i.pravatar.cc/150?img=32"},
	{ID: "user-max", Name: "Diego Fernández", AvatarURI: "https://i.pravatar.cc/150?img=68"},
}

type seedPost struct {
	id        string
	authorID  string
	content   string
	imageURI  string
	age       time.Duration
	reactions map[string]Interaction
	comments  []seedComment
}

type seedComment struct {
	authorID string
	text     string
}

var seedPosts = []seedPost{
	{
		id:       "post-1",
		authorID: "user-luna",
		content:  "¡Luna cumplió 3 años hoy! 🎂",
		imageURI: "https://images.unsplash.com/photo-1543466835-00a7907e9de1",
		age:      2 * time.Hour,
		reactions: map[string]Interaction{
			"user-toby": InteractionLike,
			"user-kira": InteractionLike,
			"user-max":  InteractionLike,
		},
		comments: []seedComment{
			{authorID: "user-toby", text: "¡Feliz cumpleaños Luna!"},
			{authorID: "user-kira", text: "Qué linda 😍"},
		},
	},
	{
		id:       "post-2",
		authorID: "user-toby",
		content:  "¿Alguien conoce una veterinaria 24h en el centro?",
		age:      26 * time.Hour,
		reactions: map[string]Interaction{
			"user-luna": InteractionLike,
		},
		comments: []seedComment{
			{authorID: "user-max", text: "La de calle Prat atiende toda la noche."},
		},
	},
	{
		id:       "post-3",
		authorID: "user-kira",
		content:  "Kira odia el baño, pero hoy se portó increíble.",
		imageURI: "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba",
		age:      3 * 24 * time.Hour,
		reactions: map[string]Interaction{
			"user-luna": InteractionLike,
			"user-max":  InteractionDislike,
		},
	},
}

// seed carga datos de ejemplo. Los contadores salen de las reacciones
// sembradas para que sean consistentes con el estado de cada viewer.
func (s *Store) seed() {
	now := s.now()

	for _, u := range seedUsers {
		s.users[u.ID] = u
		s.userIDs = append(s.userIDs, u.ID)
	}

	for _, sp := range seedPosts {
		ps := &postState{
			post: Post{
				ID:        sp.id,
				AuthorID:  sp.authorID,
				Content:   sp.content,
				ImageURI:  sp.imageURI,
				CreatedAt: now.Add(-sp.age),
			},
			reactions: map[string]Interaction{},
		}
		for viewer, i := range sp.reactions {
			ps.reactions[viewer] = i
			ps.post.Counters = bump(ps.post.Counters, i, +1)
		}
		for n, sc := range sp.comments {
			s.comments[sp.id] = append(s.comments[sp.id], Comment{
				ID:        sp.id + "-c" + strconv.Itoa(n+1),
				PostID:    sp.id,
				AuthorID:  sc.authorID,
				Text:      sc.text,
				CreatedAt: ps.post.CreatedAt.Add(time.Duration(n+1) * 10 * time.Minute),
			})
			ps.post.Comments++
		}
		s.posts[sp.id] = ps
	}
}
