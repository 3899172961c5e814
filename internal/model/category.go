package model

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Category is a persisted article category. Color arrives pre-mapped from
// the palette transform; ParentID enables a shallow hierarchy and is
// resolved from the parent slug by the reconciler.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id"`
	Name         string `bun:"name,notnull" json:"name"`
	Slug         string `bun:"slug,notnull,unique" json:"slug"`
	Description  string `bun:"description" json:"description"`
	Color        string `bun:"color,notnull" json:"color"`
	Icon         string `bun:"icon" json:"icon"`
	SortOrder    int    `bun:"sort_order,notnull,default:99" json:"sort_order"`
	ParentID     *int64 `bun:"parent_id" json:"parent_id,omitempty"`
	IsFeatured   bool   `bun:"is_featured,notnull,default:false" json:"is_featured"`
	ArticleCount int    `bun:"article_count,notnull,default:0" json:"article_count"`
	Checksum     string `bun:"checksum" json:"checksum"`
	SourcePath   string `bun:"source_path" json:"source_path"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// ParentSlug is the unresolved parent reference from the source file.
	ParentSlug string `bun:"-" json:"-"`
}

// CategoryFromFields builds a Category from validated fields. The body, when
// present, becomes the description unless the metadata already set one.
func CategoryFromFields(fields map[string]string, body string) *Category {
	c := &Category{
		Name:        strings.TrimSpace(fields["name"]),
		Description: strings.TrimSpace(fields["description"]),
		Color:       fields["color"],
		Icon:        strings.TrimSpace(fields["icon"]),
		SortOrder:   fieldInt(fields, "sort_order"),
		IsFeatured:  fieldBool(fields, "featured"),
	}
	if c.Description == "" {
		c.Description = body
	}
	c.Slug = DeriveSlug(fields["slug"], c.Name)
	if parent := strings.TrimSpace(fields["parent"]); parent != "" {
		c.ParentSlug = DeriveSlug(parent, parent)
	}
	return c
}
