// Package assistant arma el chat de IA: persona fija + idioma + pregunta.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care/internal/platform/i18n"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("assistant not configured")
)

const maxQuestionLen = 4000

// Generator es el proveedor de texto generativo. Una llamada, sin retry ni streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	gen    Generator
	bundle *i18n.Bundle
}

// NewService acepta gen nil: el servicio queda montado y responde ErrNotConfigured.
func NewService(gen Generator, bundle *i18n.Bundle) *Service {
	return &Service{gen: gen, bundle: bundle}
}

type Answer struct {
	Lang  string
	Reply string
}

// BuildPrompt antepone la persona y la directiva de idioma a la pregunta.
func (s *Service) BuildPrompt(lang, question string) string {
	persona := s.bundle.T(lang, "assistant.persona", nil)
	directive := s.bundle.T(lang, "assistant.languageDirective", map[string]string{
		"language": s.bundle.T(lang, "assistant.languageName", nil),
	})
	return persona + "\n" + directive + "\n\n" + question
}

func (s *Service) Ask(ctx context.Context, lang, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("%w: prompt required", ErrInvalidInput)
	}
	if len(question) > maxQuestionLen {
		return Answer{}, fmt.Errorf("%w: prompt too long", ErrInvalidInput)
	}
	if s.gen == nil {
		return Answer{}, ErrNotConfigured
	}

	lang = s.bundle.Match(lang)
	reply, err := s.gen.Generate(ctx, s.BuildPrompt(lang, question))
	if err != nil {
		return Answer{}, fmt.Errorf("generate: %w", err)
	}
	return Answer{Lang: lang, Reply: strings.TrimSpace(reply)}, nil
}
