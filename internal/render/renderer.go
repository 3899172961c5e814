package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creatorwire/creatorwire/internal/logging"
	"github.com/creatorwire/creatorwire/internal/model"
)

// SiteMetadata is shared by every rendered page.
type SiteMetadata struct {
	Name        string
	BaseURL     string
	GeneratedAt time.Time
}

// Config captures renderer behaviour.
type Config struct {
	OutputDir string
	SiteName  string
	BaseURL   string
}

// Pages writes static HTML files for reconciled records. Detail pages live
// at <outdir>/<type>/<slug>.html, listings at <outdir>/<type>/index.html,
// and the front page at <outdir>/index.html.
type Pages struct {
	cfg    Config
	engine Engine
	md     *Markdown
	logger logging.Logger
	now    func() time.Time
}

// Option customizes the renderer.
type Option func(*Pages)

// WithEngine replaces the default html/template engine.
func WithEngine(engine Engine) Option {
	return func(p *Pages) { p.engine = engine }
}

// WithLogger sets the renderer logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pages) { p.logger = logger }
}

// NewPages builds a renderer. Without WithEngine the built-in HTML engine
// is used.
func NewPages(cfg Config, opts ...Option) (*Pages, error) {
	p := &Pages{
		cfg:    cfg,
		md:     NewMarkdown(),
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.engine == nil {
		engine, err := NewHTMLEngine()
		if err != nil {
			return nil, err
		}
		p.engine = engine
	}
	return p, nil
}

func (p *Pages) site() SiteMetadata {
	return SiteMetadata{
		Name:        p.cfg.SiteName,
		BaseURL:     p.cfg.BaseURL,
		GeneratedAt: p.now().UTC(),
	}
}

type articlePage struct {
	Site        SiteMetadata
	Title       string
	Description string
	Article     *model.Article
	Author      *model.Author
	Category    *model.Category
	Body        string
}

type authorPage struct {
	Site        SiteMetadata
	Title       string
	Description string
	Author      *model.Author
	Articles    []*model.Article
	Body        string
}

type categoryPage struct {
	Site        SiteMetadata
	Title       string
	Description string
	Category    *model.Category
	Articles    []*model.Article
}

type trendingPage struct {
	Site        SiteMetadata
	Title       string
	Description string
	Topic       *model.TrendingTopic
	Body        string
}

type listPage struct {
	Site        SiteMetadata
	Title       string
	Description string
	Articles    []*model.Article
	Authors     []*model.Author
	Categories  []*model.Category
	Topics      []*model.TrendingTopic
}

// WriteArticle renders one article detail page and returns its route.
func (p *Pages) WriteArticle(ctx context.Context, article *model.Article, author *model.Author, category *model.Category) (string, error) {
	body, err := p.md.Convert(article.Content)
	if err != nil {
		return "", err
	}
	data := articlePage{
		Site:        p.site(),
		Title:       article.SEOTitle,
		Description: article.SEODescription,
		Article:     article,
		Author:      author,
		Category:    category,
		Body:        body,
	}
	return p.writePage(ctx, TemplateArticle, filepath.Join("articles", article.Slug+".html"), data)
}

// WriteAuthor renders one author profile page.
func (p *Pages) WriteAuthor(ctx context.Context, author *model.Author, articles []*model.Article) (string, error) {
	body, err := p.md.Convert(author.Bio)
	if err != nil {
		return "", err
	}
	data := authorPage{
		Site:     p.site(),
		Title:    author.Name,
		Author:   author,
		Articles: articles,
		Body:     body,
	}
	return p.writePage(ctx, TemplateAuthor, filepath.Join("authors", author.Slug+".html"), data)
}

// WriteCategory renders one category page with its article listing.
func (p *Pages) WriteCategory(ctx context.Context, category *model.Category, articles []*model.Article) (string, error) {
	data := categoryPage{
		Site:        p.site(),
		Title:       category.Name,
		Description: category.Description,
		Category:    category,
		Articles:    articles,
	}
	return p.writePage(ctx, TemplateCategory, filepath.Join("categories", category.Slug+".html"), data)
}

// WriteTrending renders one trending topic page.
func (p *Pages) WriteTrending(ctx context.Context, topic *model.TrendingTopic) (string, error) {
	body, err := p.md.Convert(topic.Analysis)
	if err != nil {
		return "", err
	}
	data := trendingPage{
		Site:        p.site(),
		Title:       topic.Title,
		Description: topic.Description,
		Topic:       topic,
		Body:        body,
	}
	return p.writePage(ctx, TemplateTrending, filepath.Join("trending", topic.Slug+".html"), data)
}

// Listings holds the database state the listing pages are rendered from.
// Listings always reflect the store, never the in-flight batch, so partial
// runs keep the site consistent with what was actually persisted.
type Listings struct {
	Articles   []*model.Article
	Authors    []*model.Author
	Categories []*model.Category
	Topics     []*model.TrendingTopic
}

// WriteListings renders the four per-type index pages plus the front page
// and returns the routes written.
func (p *Pages) WriteListings(ctx context.Context, lists Listings) ([]string, error) {
	site := p.site()
	pages := []struct {
		template string
		route    string
		data     listPage
	}{
		{TemplateArticleList, filepath.Join("articles", "index.html"), listPage{Site: site, Title: "Articles", Articles: lists.Articles}},
		{TemplateAuthorList, filepath.Join("authors", "index.html"), listPage{Site: site, Title: "Authors", Authors: lists.Authors}},
		{TemplateCategoryList, filepath.Join("categories", "index.html"), listPage{Site: site, Title: "Categories", Categories: lists.Categories}},
		{TemplateTrendingList, filepath.Join("trending", "index.html"), listPage{Site: site, Title: "Trending", Topics: lists.Topics}},
		{TemplateIndex, "index.html", listPage{
			Site:     site,
			Articles: capArticles(lists.Articles, 10),
			Topics:   capTopics(lists.Topics, 5),
		}},
	}

	routes := make([]string, 0, len(pages))
	for _, page := range pages {
		route, err := p.writePage(ctx, page.template, page.route, page.data)
		if err != nil {
			return routes, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func (p *Pages) writePage(ctx context.Context, template, route string, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.engine == nil {
		return "", ErrEngineRequired
	}

	html, err := p.engine.Render(template, data)
	if err != nil {
		return "", err
	}

	target := filepath.Join(p.cfg.OutputDir, route)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("render: ensure dir for %s: %w", route, err)
	}
	if err := os.WriteFile(target, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("render: write %s: %w", route, err)
	}

	p.logger.Debug("page written", "route", route, "template", template)
	return route, nil
}

func capArticles(items []*model.Article, n int) []*model.Article {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func capTopics(items []*model.TrendingTopic, n int) []*model.TrendingTopic {
	if len(items) > n {
		return items[:n]
	}
	return items
}
