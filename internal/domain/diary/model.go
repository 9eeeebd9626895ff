package diary

import (
	"time"

	"pet-care/internal/platform/civil"
)

// Sentiment es la etiqueta emocional opcional de una entrada.
// @Enum excited, happy, sad, angry
type Sentiment string

const (
	SentimentExcited Sentiment = "excited"
	SentimentHappy   Sentiment = "happy"
	SentimentSad     Sentiment = "sad"
	SentimentAngry   Sentiment = "angry"
)

var emojis = map[Sentiment]string{
	SentimentExcited: "🤩",
	SentimentHappy:   "😊",
	SentimentSad:     "😢",
	SentimentAngry:   "😠",
}

func (s Sentiment) Valid() bool {
	_, ok := emojis[s]
	return ok
}

// Emoji devuelve "" para sentimientos vacíos o desconocidos.
func (s Sentiment) Emoji() string {
	return emojis[s]
}

// Entry es una entrada del diario. Pertenece al usuario, no a una mascota.
type Entry struct {
	ID          string
	OwnerUserID string

	CreatedAt time.Time

	Title     string
	Date      civil.Date
	Location  string // opcional
	Content   string
	Sentiment Sentiment // opcional
}
