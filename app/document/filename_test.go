package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASCIIName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bewerbung_Acme.pdf", "Bewerbung_Acme.pdf"},
		{"Bewerbung_Müller.pdf", "Bewerbung_Mueller.pdf"},
		{"Bewerbung_Straße.pdf", "Bewerbung_Strasse.pdf"},
		{"Bewerbung_Café.pdf", "Bewerbung_Cafe.pdf"},
		{`Bewerbung_"A\B".pdf`, "Bewerbung__A_B_.pdf"},
		{"Bewerbung_东京.pdf", "Bewerbung___.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ASCIIName(tt.in), tt.in)
	}
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="Bewerbung_Mueller.pdf"; filename*=UTF-8''Bewerbung_M%C3%BCller.pdf`,
		ContentDisposition("Bewerbung_Müller.pdf"),
	)
}
