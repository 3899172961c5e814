package model

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// TrendingTopic is a persisted hot topic with a heat score clamped to
// [0, 100] by the validator and per-platform mention counters.
type TrendingTopic struct {
	bun.BaseModel `bun:"table:trending_topics,alias:t"`

	ID                int64   `bun:"id,pk,autoincrement" json:"id"`
	Title             string  `bun:"title,notnull" json:"title"`
	Slug              string  `bun:"slug,notnull,unique" json:"slug"`
	Description       string  `bun:"description" json:"description"`
	Analysis          string  `bun:"analysis" json:"analysis"`
	Icon              string  `bun:"icon" json:"icon"`
	Hashtag           string  `bun:"hashtag" json:"hashtag"`
	CategoryID        *int64  `bun:"category_id" json:"category_id,omitempty"`
	HeatScore         int     `bun:"heat_score,notnull,default:0" json:"heat_score"`
	GrowthRate        float64 `bun:"growth_rate,notnull,default:0" json:"growth_rate"`
	Momentum          float64 `bun:"momentum,notnull,default:0" json:"momentum"`
	Status            string  `bun:"status,notnull,default:'active'" json:"status"`
	IsActive          bool    `bun:"is_active,notnull,default:true" json:"is_active"`
	PeakDate          string  `bun:"peak_date" json:"peak_date"`
	ArticleCount      int     `bun:"article_count,notnull,default:0" json:"article_count"`
	RelatedArticles   []int64 `bun:"related_articles,type:jsonb" json:"related_articles,omitempty"`
	MentionsYouTube   int     `bun:"mentions_youtube,notnull,default:0" json:"mentions_youtube"`
	MentionsTikTok    int     `bun:"mentions_tiktok,notnull,default:0" json:"mentions_tiktok"`
	MentionsInstagram int     `bun:"mentions_instagram,notnull,default:0" json:"mentions_instagram"`
	MentionsTwitter   int     `bun:"mentions_twitter,notnull,default:0" json:"mentions_twitter"`
	MentionsTwitch    int     `bun:"mentions_twitch,notnull,default:0" json:"mentions_twitch"`
	Checksum          string  `bun:"checksum" json:"checksum"`
	SourcePath        string  `bun:"source_path" json:"source_path"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// CategorySlug is the unresolved category reference, optional for topics.
	CategorySlug string `bun:"-" json:"-"`
}

// TrendingFromFields builds a TrendingTopic from validated fields and the
// sanitized body. The first body line doubles as the description when no
// explicit one was given, matching the flat file convention.
func TrendingFromFields(fields map[string]string, body string) *TrendingTopic {
	t := &TrendingTopic{
		Title:             strings.TrimSpace(fields["title"]),
		Analysis:          body,
		Icon:              strings.TrimSpace(fields["icon"]),
		Hashtag:           fields["hashtag"],
		HeatScore:         fieldInt(fields, "heat_score"),
		GrowthRate:        fieldFloat(fields, "growth_rate"),
		Momentum:          fieldFloat(fields, "momentum"),
		Status:            strings.TrimSpace(fields["status"]),
		IsActive:          fieldBool(fields, "is_active"),
		PeakDate:          strings.TrimSpace(fields["peak_date"]),
		RelatedArticles:   fieldIDList(fields, "related_articles"),
		MentionsYouTube:   fieldInt(fields, "mentions_youtube"),
		MentionsTikTok:    fieldInt(fields, "mentions_tiktok"),
		MentionsInstagram: fieldInt(fields, "mentions_instagram"),
		MentionsTwitter:   fieldInt(fields, "mentions_twitter"),
		MentionsTwitch:    fieldInt(fields, "mentions_twitch"),
	}

	if desc := strings.TrimSpace(fields["description"]); desc != "" {
		t.Description = desc
	} else if body != "" {
		t.Description = strings.TrimSpace(strings.SplitN(body, "\n", 2)[0])
	}

	t.ArticleCount = len(t.RelatedArticles)
	t.Slug = DeriveSlug(fields["slug"], t.Title)
	if category := strings.TrimSpace(fields["category"]); category != "" {
		t.CategorySlug = DeriveSlug(category, category)
	}
	return t
}
