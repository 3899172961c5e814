package model

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Article is a persisted news article. AuthorID and CategoryID are resolved
// from the author/category slugs in the source file before the record is
// written; the slug columns here keep the file's references for that lookup.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID              int64    `bun:"id,pk,autoincrement" json:"id"`
	Title           string   `bun:"title,notnull" json:"title"`
	Slug            string   `bun:"slug,notnull,unique" json:"slug"`
	Excerpt         string   `bun:"excerpt" json:"excerpt"`
	Content         string   `bun:"content,notnull" json:"content"`
	AuthorID        int64    `bun:"author_id,notnull" json:"author_id"`
	CategoryID      int64    `bun:"category_id,notnull" json:"category_id"`
	Tags            []string `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Featured        bool     `bun:"featured,notnull,default:false" json:"featured"`
	Trending        bool     `bun:"trending,notnull,default:false" json:"trending"`
	PublishDate     string   `bun:"publish_date" json:"publish_date"`
	ImageURL        string   `bun:"image_url" json:"image_url"`
	HeroImageURL    string   `bun:"hero_image_url" json:"hero_image_url"`
	ThumbnailURL    string   `bun:"thumbnail_url" json:"thumbnail_url"`
	Views           int      `bun:"views,notnull,default:0" json:"views"`
	Likes           int      `bun:"likes,notnull,default:0" json:"likes"`
	Comments        int      `bun:"comments,notnull,default:0" json:"comments"`
	ReadTimeMinutes int      `bun:"read_time_minutes,notnull,default:1" json:"read_time_minutes"`
	SEOTitle        string   `bun:"seo_title" json:"seo_title"`
	SEODescription  string   `bun:"seo_description" json:"seo_description"`
	MobileTitle     string   `bun:"mobile_title" json:"mobile_title"`
	MobileExcerpt   string   `bun:"mobile_excerpt" json:"mobile_excerpt"`
	Checksum        string   `bun:"checksum" json:"checksum"`
	SourcePath      string   `bun:"source_path" json:"source_path"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// AuthorSlug and CategorySlug come from the source file and are not
	// persisted; the reconciler resolves them to ids before writing.
	AuthorSlug   string `bun:"-" json:"-"`
	CategorySlug string `bun:"-" json:"-"`
}

// ArticleFromFields builds an Article from validated fields and the
// sanitized body. Absent fields take the documented defaults.
func ArticleFromFields(fields map[string]string, body string) *Article {
	a := &Article{
		Title:           strings.TrimSpace(fields["title"]),
		Excerpt:         strings.TrimSpace(fields["excerpt"]),
		Content:         body,
		Tags:            fieldList(fields, "tags"),
		Featured:        fieldBool(fields, "featured"),
		Trending:        fieldBool(fields, "trending"),
		PublishDate:     strings.TrimSpace(fields["publish_date"]),
		ImageURL:        fields["image"],
		HeroImageURL:    fields["hero_image"],
		ThumbnailURL:    fields["thumbnail"],
		Views:           fieldInt(fields, "views"),
		Likes:           fieldInt(fields, "likes"),
		Comments:        fieldInt(fields, "comments"),
		ReadTimeMinutes: fieldInt(fields, "read_time_minutes"),
		SEOTitle:        strings.TrimSpace(fields["seo_title"]),
		SEODescription:  strings.TrimSpace(fields["seo_description"]),
		MobileTitle:     strings.TrimSpace(fields["mobile_title"]),
		MobileExcerpt:   strings.TrimSpace(fields["mobile_excerpt"]),
	}

	a.Slug = DeriveSlug(fields["slug"], a.Title)
	a.AuthorSlug = DeriveSlug(fields["author"], fields["author"])
	a.CategorySlug = DeriveSlug(fields["category"], fields["category"])

	if a.ReadTimeMinutes < 1 {
		a.ReadTimeMinutes = EstimateReadTime(body)
	}
	if a.SEOTitle == "" {
		a.SEOTitle = a.Title
	}
	if a.MobileTitle == "" {
		a.MobileTitle = a.Title
	}
	if a.MobileExcerpt == "" {
		a.MobileExcerpt = a.Excerpt
	}
	return a
}
