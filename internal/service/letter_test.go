package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type stubLLM struct {
	calls    atomic.Int32
	messages []llms.MessageContent
	respond  func(ctx context.Context, call int) (*llms.ContentResponse, error)
}

func (s *stubLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	s.messages = messages
	return s.respond(ctx, int(s.calls.Add(1)))
}

func reply(text string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}
}

func newTestGenerator(llm Completer, opts ...LetterOption) *LetterGenerator {
	g := NewLetterGenerator(llm, opts...)
	g.delay = func() time.Duration { return 0 }

	return g
}

func TestGenerateReturnsModelTextVerbatim(t *testing.T) {
	letter := "  Sehr geehrte Damen und Herren,\n\nmit großem Interesse ...\n"
	stub := &stubLLM{respond: func(context.Context, int) (*llms.ContentResponse, error) {
		return reply(letter), nil
	}}

	title := "Backend Engineer"
	got, err := newTestGenerator(stub).Generate(context.Background(),
		model.JobAnalysis{JobTitle: &title, Tone: "locker"},
		model.ResumeData{},
	)
	require.NoError(t, err)

	assert.Equal(t, letter, got.CoverLetter)
	assert.Equal(t, model.ToneFormal, got.Tone)
	assert.EqualValues(t, 1, stub.calls.Load())

	require.Len(t, stub.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, stub.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, stub.messages[1].Role)
}

func TestGenerateRetriesOnce(t *testing.T) {
	stub := &stubLLM{respond: func(_ context.Context, call int) (*llms.ContentResponse, error) {
		if call == 1 {
			return nil, errors.New("503 service unavailable")
		}

		return reply("Anschreiben"), nil
	}}

	got, err := newTestGenerator(stub).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
	require.NoError(t, err)
	assert.Equal(t, "Anschreiben", got.CoverLetter)
	assert.EqualValues(t, 2, stub.calls.Load())
}

func TestGenerateGivesUp(t *testing.T) {
	stub := &stubLLM{respond: func(context.Context, int) (*llms.ContentResponse, error) {
		return nil, errors.New("API returned unexpected status code: 503")
	}}

	_, err := newTestGenerator(stub, WithLLMRetries(2)).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.EqualValues(t, 3, stub.calls.Load())
}

func TestGenerateClientErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bad key", errors.New("API returned unexpected status code: 401: invalid api key")},
		{"bad request", errors.New("API returned unexpected status code: 400: bad request")},
		{"quota", errors.New("You exceeded your current quota")},
		{"mapped", llms.NewError(llms.ErrCodeAuthentication, "openai", "denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubLLM{respond: func(context.Context, int) (*llms.ContentResponse, error) {
				return nil, tt.err
			}}

			_, err := newTestGenerator(stub, WithLLMRetries(2)).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
			assert.ErrorIs(t, err, ErrGeneration)
			assert.EqualValues(t, 1, stub.calls.Load())
		})
	}
}

func TestGenerateRateLimitIsRetried(t *testing.T) {
	stub := &stubLLM{respond: func(_ context.Context, call int) (*llms.ContentResponse, error) {
		if call == 1 {
			return nil, errors.New("API returned unexpected status code: 429: rate limit reached")
		}

		return reply("Anschreiben"), nil
	}}

	_, err := newTestGenerator(stub).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, stub.calls.Load())
}

func TestGenerateEmptyResponse(t *testing.T) {
	stub := &stubLLM{respond: func(context.Context, int) (*llms.ContentResponse, error) {
		return &llms.ContentResponse{}, nil
	}}

	_, err := newTestGenerator(stub, WithLLMRetries(0)).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestGenerateTimeoutIsNotRetried(t *testing.T) {
	stub := &stubLLM{respond: func(ctx context.Context, _ int) (*llms.ContentResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	_, err := newTestGenerator(stub, WithLLMTimeout(20*time.Millisecond)).Generate(context.Background(), model.JobAnalysis{}, model.ResumeData{})
	assert.ErrorIs(t, err, ErrGeneration)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestBuildPrompt(t *testing.T) {
	company := "Acme"
	jobText := strings.Repeat("j", maxPromptText+100)
	name := "Erika Muster"
	email := "erika@example.de"

	system, user := BuildPrompt(
		model.JobAnalysis{CompanyName: &company, Tone: model.ToneCreative, RawText: &jobText},
		model.ResumeData{FullName: &name, Email: &email},
	)

	assert.Contains(t, system, "Du bist ein professioneller Bewerbungsschreiber")
	assert.Contains(t, system, toneInstructions[model.ToneCreative])

	assert.Contains(t, user, "- Firma: Acme\n")
	assert.Contains(t, user, "- Position: Unbekannt\n")
	assert.Contains(t, user, "- Stellenbeschreibung: "+strings.Repeat("j", maxPromptText)+"\n")
	assert.NotContains(t, user, strings.Repeat("j", maxPromptText+1))
	assert.Contains(t, user, "- Name: Erika Muster\n")
	assert.Contains(t, user, "- E-Mail: erika@example.de\n")
	assert.Contains(t, user, "- Telefon: \n")
	assert.True(t, strings.HasSuffix(user, "Erstelle jetzt ein professionelles Bewerbungsanschreiben auf Deutsch."))

	system, _ = BuildPrompt(model.JobAnalysis{Tone: "unbekannt"}, model.ResumeData{})
	assert.Contains(t, system, toneInstructions[model.ToneFormal])
}
