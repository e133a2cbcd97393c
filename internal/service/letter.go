package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/util"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	// maxPromptText is how much of each raw text goes into the prompt
	maxPromptText = 3000

	defaultLLMTimeout = time.Minute
)

var toneInstructions = map[model.Tone]string{
	model.ToneFormal:    "Verwende einen formellen, professionellen Ton. Sei höflich und respektvoll.",
	model.ToneCreative:  "Verwende einen kreativen, aber professionellen Ton. Zeige Persönlichkeit und Begeisterung.",
	model.ToneTechnical: "Verwende einen sachlichen, technisch präzisen Ton. Fokussiere auf Fähigkeiten und Erfahrungen.",
}

const systemPrompt = `Du bist ein professioneller Bewerbungsschreiber für den deutschen Arbeitsmarkt.
Erstelle ein überzeugendes Bewerbungsanschreiben auf Deutsch.
%s

Das Anschreiben soll:
- Maximal eine DIN A4 Seite lang sein
- Die Firma und Position direkt ansprechen
- Die wichtigsten Qualifikationen des Bewerbers hervorheben
- Einen starken Einstieg und Abschluss haben
- Professionell formatiert sein mit:
  - Absenderadresse oben
  - Datum
  - Empfängeradresse
  - Betreff
  - Anrede
  - Haupttext (2-3 Absätze)
  - Grußformel und Name`

const userPrompt = `
STELLENINFORMATIONEN:
- Firma: %s
- Position: %s
- Stellenbeschreibung: %s



BEWERBERINFORMATIONEN:
- Name: %s
- E-Mail: %s
- Telefon: %s
- Lebenslauf/Qualifikationen: %s


Erstelle jetzt ein professionelles Bewerbungsanschreiben auf Deutsch.`

// Completer is the part of a language model the generator needs. Every
// langchaingo llms.Model satisfies it.
type Completer interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Letter is a generated cover letter and the tone it was written in
type Letter struct {
	CoverLetter string     `json:"cover_letter"`
	Tone        model.Tone `json:"tone"`
}

// LetterGenerator drafts cover letters with a language model. Each call gets
// a hard timeout and a bounded number of retries.
type LetterGenerator struct {
	llm     Completer
	timeout time.Duration
	retries int
	delay   func() time.Duration
}

type LetterOption func(*LetterGenerator)

func WithLLMTimeout(d time.Duration) LetterOption {
	return func(g *LetterGenerator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLLMRetries(n int) LetterOption {
	return func(g *LetterGenerator) {
		if n >= 0 {
			g.retries = n
		}
	}
}

func NewLetterGenerator(llm Completer, opts ...LetterOption) *LetterGenerator {
	g := &LetterGenerator{
		llm:     llm,
		timeout: defaultLLMTimeout,
		retries: 1,
		delay:   jitter,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// jitter waits between 500ms and 1.5s before a retry
func jitter() time.Duration {
	return 500*time.Millisecond + rand.N(time.Second)
}

// Generate writes a cover letter for job and resume. The model's answer is
// returned as is.
func (g *LetterGenerator) Generate(ctx context.Context, job model.JobAnalysis, resume model.ResumeData) (*Letter, error) {
	tone := job.Tone.Normalize()
	system, user := BuildPrompt(job, resume)
	sessionID := "cover-letter-" + uuid.NewString()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var lastErr error

	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			zap.L().Warn("Retrying cover letter generation",
				zap.String("session", sessionID),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)

			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w, %s, %v", ErrGeneration, sessionID, ctx.Err())
			case <-time.After(g.delay()):
			}
		}

		text, err := g.complete(ctx, messages)
		if err == nil {
			zap.L().Debug("Cover letter generated", zap.String("session", sessionID), zap.Int("length", len(text)))
			return &Letter{CoverLetter: text, Tone: tone}, nil
		}

		lastErr = err

		// Caller went away or the hard timeout hit, another attempt can't succeed
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	return nil, fmt.Errorf("%w, %s, %v", ErrGeneration, sessionID, lastErr)
}

func (g *LetterGenerator) complete(ctx context.Context, messages []llms.MessageContent) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", errors.New("empty response from model")
	}

	return resp.Choices[0].Content, nil
}

// retryable reports whether another attempt could succeed. Rejections of the
// request itself, like a bad key or an exhausted quota, fail the same way again.
func retryable(err error) bool {
	var llmErr *llms.Error
	if !errors.As(llms.NewErrorMapper("llm").WrapError(err), &llmErr) {
		return true
	}

	switch llmErr.Code {
	case llms.ErrCodeUnknown, llms.ErrCodeRateLimit, llms.ErrCodeTimeout, llms.ErrCodeProviderUnavailable:
		return true
	default:
		return false
	}
}

// BuildPrompt assembles the system instruction for the job's tone and the
// user message describing the job and the applicant
func BuildPrompt(job model.JobAnalysis, resume model.ResumeData) (system, user string) {
	system = fmt.Sprintf(systemPrompt, toneInstructions[job.Tone.Normalize()])

	user = fmt.Sprintf(userPrompt,
		model.Deref(job.CompanyName, Fallback),
		model.Deref(job.JobTitle, Fallback),
		util.Truncate(model.Deref(job.RawText, ""), maxPromptText),
		model.Deref(resume.FullName, Fallback),
		model.Deref(resume.Email, ""),
		model.Deref(resume.Phone, ""),
		util.Truncate(model.Deref(resume.RawText, ""), maxPromptText),
	)

	return system, user
}
