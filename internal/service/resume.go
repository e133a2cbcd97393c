package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\+?\(?[0-9]{1,4}\)?[-\s./0-9]{7,}`)
)

// ResumeExtractor turns an uploaded résumé PDF into ResumeData
type ResumeExtractor struct {
	timeout time.Duration
}

func NewResumeExtractor(timeout time.Duration) *ResumeExtractor {
	return &ResumeExtractor{timeout: timeout}
}

// IsPDFName reports whether filename ends in .pdf, ignoring case
func IsPDFName(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// Extract parses data as a PDF named filename. Only names ending in .pdf are
// accepted, whatever the content is.
func (e *ResumeExtractor) Extract(ctx context.Context, filename string, data []byte) (*model.ResumeData, error) {
	if !IsPDFName(filename) {
		return nil, ErrUnsupportedFileType
	}

	if mime := mimetype.Detect(data); !mime.Is("application/pdf") {
		return nil, fmt.Errorf("%w, content is %s", ErrExtraction, mime.String())
	}

	text, err := e.readText(ctx, data)
	if err != nil {
		return nil, err
	}

	return ParseResumeText(text), nil
}

type extractResult struct {
	text string
	err  error
}

// readText runs the PDF parser with a deadline. The parser can't be
// interrupted, so on timeout its goroutine finishes on its own.
func (e *ResumeExtractor) readText(ctx context.Context, data []byte) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	done := make(chan extractResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extractResult{err: fmt.Errorf("%w, parser panic: %v", ErrExtraction, r)}
			}
		}()

		text, err := pdfText(data)
		done <- extractResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w, %v", ErrExtraction, ctx.Err())
	}
}

// pdfText concatenates the text of every non-empty page, each followed by a
// newline
func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w, %v", ErrExtraction, err)
	}

	var b strings.Builder

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		if text := strings.TrimSpace(pageLines(page.Content().Text)); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

// pageLines joins positioned glyphs into lines. A glyph starts a new line
// when its baseline moves or it lands left of the previous one.
func pageLines(glyphs []pdf.Text) string {
	var (
		b            strings.Builder
		lastX, lastY float64
	)

	for i, t := range glyphs {
		if i > 0 {
			tol := t.FontSize / 2
			if tol <= 0 {
				tol = 1
			}

			if math.Abs(t.Y-lastY) > tol || t.X < lastX-tol {
				b.WriteString("\n")
			}
		}

		b.WriteString(t.S)
		lastX, lastY = t.X+t.W, t.Y
	}

	return b.String()
}

// ParseResumeText pulls the name, email and phone number out of plain résumé
// text. The name is simply the first non-blank line.
func ParseResumeText(text string) *model.ResumeData {
	raw := util.Truncate(text, MaxRawText)

	data := &model.ResumeData{
		Education:  []string{},
		Experience: []string{},
		Skills:     []string{},
		RawText:    &raw,
	}

	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			data.FullName = &l
			break
		}
	}

	if m := emailPattern.FindString(text); m != "" {
		data.Email = &m
	}

	if m := strings.TrimSpace(phonePattern.FindString(text)); m != "" {
		data.Phone = &m
	}

	return data
}
