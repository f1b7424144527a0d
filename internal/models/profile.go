package models

import "time"

// Localized holds an English/Italian pair for a translatable field.
type Localized struct {
	En string `json:"en"`
	It string `json:"it"`
}

// LocalizedList holds a list of strings per language.
type LocalizedList struct {
	En []string `json:"en"`
	It []string `json:"it"`
}

// Merge overlays non-nil incoming values onto the stored pair.
func (l *Localized) Merge(in *Localized) {
	if in == nil {
		return
	}
	if in.En != "" {
		l.En = in.En
	}
	if in.It != "" {
		l.It = in.It
	}
}

type SpokenLanguage struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"` // Native, Fluent, Advanced, Intermediate, Basic
}

type SkillSet struct {
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Frameworks           []string `json:"frameworks"`
	Databases            []string `json:"databases"`
	Tools                []string `json:"tools"`
	WebDevelopment       []string `json:"webDevelopment"`
	AiMl                 []string `json:"aiMl"`
	Other                []string `json:"other"`
}

type Thesis struct {
	Title      string `json:"title"`
	Supervisor string `json:"supervisor"`
	Mark       string `json:"mark"`
}

type Education struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Degree       Localized  `json:"degree"`
	FieldOfStudy Localized  `json:"fieldOfStudy"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  Localized  `json:"description"`
	Location     string     `json:"location"`
	Thesis       Thesis     `json:"thesis"`
}

type Experience struct {
	ID               string        `json:"id"`
	Title            Localized     `json:"title"`
	Company          string        `json:"company"`
	Location         string        `json:"location"`
	From             *time.Time    `json:"from,omitempty"`
	To               *time.Time    `json:"to,omitempty"`
	Current          bool          `json:"current"`
	Description      Localized     `json:"description"`
	Responsibilities LocalizedList `json:"responsibilities"`
	Skills           []string      `json:"skills"`
	Type             string        `json:"type"` // Internship, Full-time, Part-time, Freelance, Contract
}

type ProjectExperience struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  Localized     `json:"description"`
	Technologies []string      `json:"technologies"`
	Year         string        `json:"year"`
	Role         string        `json:"role"`
	Bullets      LocalizedList `json:"bullets"`
	Link         string        `json:"link"`
	Image        string        `json:"image"`
}

type SocialLinks struct {
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Email    string `json:"email"`
}

// ProfileUpdate carries a partial profile upsert. Nil fields keep stored
// values; localized fields merge per language.
type ProfileUpdate struct {
	FullName  *string          `json:"fullName"`
	Title     *Localized       `json:"title"`
	Bio       *Localized       `json:"bio"`
	Avatar    *string          `json:"avatar"`
	Tagline   *Localized       `json:"tagline"`
	Location  *string          `json:"location"`
	Languages []SpokenLanguage `json:"languages"`
	Skills    *SkillSet        `json:"skills"`
	Social    *SocialLinks     `json:"social"`
}

// Profile is the site owner's single profile document. Nested structures
// are stored as JSONB columns.
type Profile struct {
	ID                string              `json:"id"`
	FullName          string              `json:"fullName"`
	Title             Localized           `json:"title"`
	Bio               Localized           `json:"bio"`
	Avatar            string              `json:"avatar"`
	Tagline           Localized           `json:"tagline"`
	Location          string              `json:"location"`
	Languages         []SpokenLanguage    `json:"languages"`
	Skills            SkillSet            `json:"skills"`
	Education         []Education         `json:"education"`
	Experience        []Experience        `json:"experience"`
	ProjectExperience []ProjectExperience `json:"projectExperience"`
	Social            SocialLinks         `json:"social"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}
