package model

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Author is a persisted article author. ArticleCount is denormalized and
// owned by the reconciler; values from source files are never trusted.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:au"`

	ID           int64    `bun:"id,pk,autoincrement" json:"id"`
	Name         string   `bun:"name,notnull" json:"name"`
	Slug         string   `bun:"slug,notnull,unique" json:"slug"`
	Title        string   `bun:"title" json:"title"`
	Bio          string   `bun:"bio" json:"bio"`
	Expertise    []string `bun:"expertise,type:jsonb" json:"expertise,omitempty"`
	Location     string   `bun:"location" json:"location"`
	Twitter      string   `bun:"twitter" json:"twitter"`
	LinkedIn     string   `bun:"linkedin" json:"linkedin"`
	ImageURL     string   `bun:"image_url" json:"image_url"`
	Rating       float64  `bun:"rating,notnull,default:0" json:"rating"`
	IsActive     bool     `bun:"is_active,notnull,default:true" json:"is_active"`
	ArticleCount int      `bun:"article_count,notnull,default:0" json:"article_count"`
	JoinedDate   string   `bun:"joined_date" json:"joined_date"`
	Checksum     string   `bun:"checksum" json:"checksum"`
	SourcePath   string   `bun:"source_path" json:"source_path"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// AuthorFromFields builds an Author from validated fields and the sanitized
// bio body.
func AuthorFromFields(fields map[string]string, body string) *Author {
	a := &Author{
		Name:       strings.TrimSpace(fields["name"]),
		Title:      strings.TrimSpace(fields["title"]),
		Bio:        body,
		Expertise:  fieldList(fields, "expertise"),
		Location:   strings.TrimSpace(fields["location"]),
		Twitter:    fields["twitter"],
		LinkedIn:   fields["linkedin"],
		ImageURL:   fields["image"],
		Rating:     fieldFloat(fields, "rating"),
		IsActive:   fieldBool(fields, "is_active"),
		JoinedDate: strings.TrimSpace(fields["joined_date"]),
	}
	if a.Bio == "" {
		a.Bio = strings.TrimSpace(fields["bio"])
	}
	a.Slug = DeriveSlug(fields["slug"], a.Name)
	return a
}
