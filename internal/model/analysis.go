package model

type Tone string

const (
	ToneFormal    Tone = "formal"
	ToneCreative  Tone = "creative"
	ToneTechnical Tone = "technical"
)

// Normalize maps anything that isn't a known tone to ToneFormal
func (t Tone) Normalize() Tone {
	switch t {
	case ToneFormal, ToneCreative, ToneTechnical:
		return t
	default:
		return ToneFormal
	}
}

// JobAnalysis is what the scraper learned about a job posting. Unknown JSON
// fields are dropped when it's decoded from a request.
type JobAnalysis struct {
	CompanyName        *string  `json:"company_name"`
	JobTitle           *string  `json:"job_title"`
	Location           *string  `json:"location"`
	ContactPerson      *string  `json:"contact_person"`
	Requirements       []string `json:"requirements"`
	Tasks              []string `json:"tasks"`
	CompanyDescription *string  `json:"company_description"`
	Tone               Tone     `json:"tone"`
	RawText            *string  `json:"raw_text"`
}

// ResumeData is what the extractor pulled out of an uploaded résumé
type ResumeData struct {
	FullName   *string  `json:"full_name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	RawText    *string  `json:"raw_text"`
}

// Deref returns the value behind p or fallback when p is nil or empty
func Deref(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}

	return *p
}
