package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	lineHeight = 5.6
	// 12pt in mm
	paragraphGap = 12 * 25.4 / 72
)

// DocumentRenderer lays a cover letter out on A4 pages
type DocumentRenderer struct {
	compress bool
}

type RendererOption func(*DocumentRenderer)

// WithCompression toggles stream compression in the produced file
func WithCompression(on bool) RendererOption {
	return func(r *DocumentRenderer) {
		r.compress = on
	}
}

func NewDocumentRenderer(opts ...RendererOption) *DocumentRenderer {
	r := &DocumentRenderer{compress: true}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Paragraphs splits a letter on blank lines and drops empty pieces
func Paragraphs(letter string) []string {
	letter = strings.ReplaceAll(letter, "\r\n", "\n")

	out := []string{}
	for _, p := range strings.Split(letter, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Render produces a PDF with one block per paragraph
func (r *DocumentRenderer) Render(letter string) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w, %v", ErrRender, rec)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(25, 20, 25)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(30, 41, 59)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range Paragraphs(letter) {
		pdf.MultiCell(0, lineHeight, tr(p), "", "L", false)
		pdf.Ln(paragraphGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrRender, err)
	}

	return buf.Bytes(), nil
}

// DownloadName is the file name offered for a rendered letter
func DownloadName(company *string) string {
	name := strings.TrimSpace(model.Deref(company, ""))
	if name == "" {
		name = "Dokument"
	}

	return "Bewerbung_" + name + ".pdf"
}
