package contentfile

// legacyAliases maps field names from older content file revisions to their
// canonical names. Aliasing is resolved here, during extraction, so the
// validator and models only ever see canonical keys. When a file carries
// both the legacy and the canonical key, the canonical value wins.
var legacyAliases = map[string]string{
	// trending topics
	"topic":              "title",
	"trend_score":        "heat_score",
	"youtube_mentions":   "mentions_youtube",
	"tiktok_mentions":    "mentions_tiktok",
	"instagram_mentions": "mentions_instagram",
	"twitter_mentions":   "mentions_twitter",
	"twitch_mentions":    "mentions_twitch",

	// articles
	"subtitle":         "excerpt",
	"publication_date": "publish_date",
	"view_count":       "views",
	"read_time":        "read_time_minutes",
	"meta_description": "seo_description",
}

// ApplyAliases rewrites legacy keys in the document to their canonical
// names. The key order slice is rewritten in place so the document stays
// ordered; a legacy key whose canonical counterpart is already present is
// dropped rather than overwriting it.
func ApplyAliases(doc *RawDocument) {
	if doc == nil || len(doc.Fields) == 0 {
		return
	}

	keys := doc.Keys[:0]
	for _, key := range doc.Keys {
		canonical, isLegacy := legacyAliases[key]
		if !isLegacy {
			keys = append(keys, key)
			continue
		}
		value := doc.Fields[key]
		delete(doc.Fields, key)
		if _, exists := doc.Fields[canonical]; exists {
			continue
		}
		doc.Fields[canonical] = value
		keys = append(keys, canonical)
	}
	doc.Keys = keys
}
