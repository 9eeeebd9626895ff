package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-care/internal/platform/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func TestService_Ask_BuildsPromptInLanguage(t *testing.T) {
	bundle := i18n.MustLoad()
	gen := &fakeGenerator{reply: "  Give it water.  "}
	svc := NewService(gen, bundle)

	ans, err := svc.Ask(context.Background(), "en-GB", "My dog is panting, what do I do?")
	require.NoError(t, err)
	assert.Equal(t, "en", ans.Lang)
	assert.Equal(t, "Give it water.", ans.Reply)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, bundle.T("en", "assistant.persona", nil)))
	assert.Contains(t, prompt, "English")
	assert.True(t, strings.HasSuffix(prompt, "My dog is panting, what do I do?"))
}

func TestService_Ask_DefaultsToSpanish(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewService(gen, i18n.MustLoad())

	ans, err := svc.Ask(context.Background(), "", "¿Cada cuánto baño a mi gato?")
	require.NoError(t, err)
	assert.Equal(t, "es", ans.Lang)
	assert.Contains(t, gen.prompts[0], "español")
}

func TestService_Ask_Errors(t *testing.T) {
	bundle := i18n.MustLoad()

	_, err := NewService(&fakeGenerator{}, bundle).Ask(context.Background(), "es", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewService(nil, bundle).Ask(context.Background(), "es", "hola")
	assert.ErrorIs(t, err, ErrNotConfigured)

	upstream := errors.New("quota exceeded")
	_, err = NewService(&fakeGenerator{err: upstream}, bundle).Ask(context.Background(), "es", "hola")
	assert.ErrorIs(t, err, upstream)
}
