package render

// Template names understood by the page renderer. A custom engine or an
// overriding Register call can replace any of them.
const (
	TemplateArticle      = "article"
	TemplateAuthor       = "author"
	TemplateCategory     = "category"
	TemplateTrending     = "trending"
	TemplateArticleList  = "article_list"
	TemplateAuthorList   = "author_list"
	TemplateCategoryList = "category_list"
	TemplateTrendingList = "trending_list"
	TemplateIndex        = "index"
)

const layoutHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Site.Name}}{{with .Title}} | {{.}}{{end}}</title>
{{with .Description}}<meta name="description" content="{{.}}">{{end}}
</head>
<body>
<header><a href="{{.Site.BaseURL}}/index.html">{{.Site.Name}}</a></header>
<main>`

const layoutFoot = `</main>
<footer><small>Generated {{.Site.GeneratedAt.Format "2006-01-02 15:04 MST"}}</small></footer>
</body>
</html>`

const articleTemplate = layoutHead + `
<article>
<h1>{{.Article.Title}}</h1>
<p class="meta">
{{with .Author}}By <a href="{{$.Site.BaseURL}}/authors/{{.Slug}}.html">{{.Name}}</a>{{end}}
{{with .Category}} in <a href="{{$.Site.BaseURL}}/categories/{{.Slug}}.html" style="color: {{.Color}}">{{.Name}}</a>{{end}}
{{with .Article.PublishDate}} on {{.}}{{end}}
&middot; {{.Article.ReadTimeMinutes}} min read
</p>
{{with .Article.HeroImageURL}}<img src="{{.}}" alt="{{$.Article.Title}}">{{end}}
{{with .Article.Excerpt}}<p class="excerpt">{{.}}</p>{{end}}
<div class="content">{{.Body | safe}}</div>
{{with .Article.Tags}}<p class="tags">{{join . ", "}}</p>{{end}}
</article>` + layoutFoot

const authorTemplate = layoutHead + `
<section class="author">
{{with .Author.ImageURL}}<img src="{{.}}" alt="{{$.Author.Name}}">{{end}}
<h1>{{.Author.Name}}</h1>
{{with .Author.Title}}<p class="role">{{.}}</p>{{end}}
{{with .Author.Location}}<p class="location">{{.}}</p>{{end}}
<div class="bio">{{.Body | safe}}</div>
{{with .Author.Expertise}}<p class="expertise">{{join . ", "}}</p>{{end}}
<p class="stats">{{.Author.ArticleCount}} articles &middot; rating {{printf "%.1f" .Author.Rating}}</p>
</section>
{{with .Articles}}
<section class="articles">
<h2>Articles</h2>
<ul>
{{range .}}<li><a href="{{$.Site.BaseURL}}/articles/{{.Slug}}.html">{{.Title}}</a></li>
{{end}}</ul>
</section>
{{end}}` + layoutFoot

const categoryTemplate = layoutHead + `
<section class="category" style="border-color: {{.Category.Color}}">
<h1>{{.Category.Name}}</h1>
{{with .Category.Description}}<p>{{.}}</p>{{end}}
<p class="stats">{{.Category.ArticleCount}} articles</p>
</section>
{{with .Articles}}
<section class="articles">
<ul>
{{range .}}<li><a href="{{$.Site.BaseURL}}/articles/{{.Slug}}.html">{{.Title}}</a>{{with .PublishDate}} <time>{{.}}</time>{{end}}</li>
{{end}}</ul>
</section>
{{end}}` + layoutFoot

const trendingTemplate = layoutHead + `
<section class="trending">
<h1>{{with .Topic.Icon}}{{.}} {{end}}{{.Topic.Title}}</h1>
{{with .Topic.Hashtag}}<p class="hashtag">{{.}}</p>{{end}}
<p class="heat">Heat {{.Topic.HeatScore}}/100 &middot; momentum {{printf "%.1f" .Topic.Momentum}} &middot; {{.Topic.Status}}</p>
{{with .Topic.Description}}<p>{{.}}</p>{{end}}
<div class="analysis">{{.Body | safe}}</div>
</section>` + layoutFoot

const articleListTemplate = layoutHead + `
<h1>Articles</h1>
<ul class="article-list">
{{range .Articles}}<li>
<a href="{{$.Site.BaseURL}}/articles/{{.Slug}}.html">{{.Title}}</a>
{{with .PublishDate}}<time>{{.}}</time>{{end}}
{{with .Excerpt}}<p>{{.}}</p>{{end}}
</li>
{{end}}</ul>` + layoutFoot

const authorListTemplate = layoutHead + `
<h1>Authors</h1>
<ul class="author-list">
{{range .Authors}}<li><a href="{{$.Site.BaseURL}}/authors/{{.Slug}}.html">{{.Name}}</a>{{with .Title}} <span>{{.}}</span>{{end}} ({{.ArticleCount}})</li>
{{end}}</ul>` + layoutFoot

const categoryListTemplate = layoutHead + `
<h1>Categories</h1>
<ul class="category-list">
{{range .Categories}}<li><a href="{{$.Site.BaseURL}}/categories/{{.Slug}}.html" style="color: {{.Color}}">{{.Name}}</a> ({{.ArticleCount}})</li>
{{end}}</ul>` + layoutFoot

const trendingListTemplate = layoutHead + `
<h1>Trending</h1>
<ol class="trending-list">
{{range .Topics}}<li><a href="{{$.Site.BaseURL}}/trending/{{.Slug}}.html">{{with .Icon}}{{.}} {{end}}{{.Title}}</a> <span class="heat">{{.HeatScore}}</span></li>
{{end}}</ol>` + layoutFoot

const indexTemplate = layoutHead + `
<section class="latest">
<h2>Latest</h2>
<ul>
{{range .Articles}}<li><a href="{{$.Site.BaseURL}}/articles/{{.Slug}}.html">{{.Title}}</a></li>
{{end}}</ul>
</section>
<section class="hot">
<h2>Trending</h2>
<ol>
{{range .Topics}}<li><a href="{{$.Site.BaseURL}}/trending/{{.Slug}}.html">{{.Title}}</a></li>
{{end}}</ol>
</section>
<nav>
<a href="{{.Site.BaseURL}}/articles/index.html">Articles</a>
<a href="{{.Site.BaseURL}}/authors/index.html">Authors</a>
<a href="{{.Site.BaseURL}}/categories/index.html">Categories</a>
<a href="{{.Site.BaseURL}}/trending/index.html">Trending</a>
</nav>` + layoutFoot

func builtinTemplates() map[string]string {
	return map[string]string{
		TemplateArticle:      articleTemplate,
		TemplateAuthor:       authorTemplate,
		TemplateCategory:     categoryTemplate,
		TemplateTrending:     trendingTemplate,
		TemplateArticleList:  articleListTemplate,
		TemplateAuthorList:   authorListTemplate,
		TemplateCategoryList: categoryListTemplate,
		TemplateTrendingList: trendingListTemplate,
		TemplateIndex:        indexTemplate,
	}
}
