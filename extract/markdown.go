package extract

import (
	"fmt"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/use-agent/scrapeboard/models"
)

var (
	mdOnce sync.Once
	mdConv *converter.Converter
)

// markdownConverter returns the shared, goroutine-safe Converter.
//
//   - base plugin: strips script, style, iframe, noscript, head, meta, link,
//     input, textarea, and HTML comments.
//   - commonmark plugin: standard Markdown rendering.
//   - table plugin with minimal cell padding: preserves tabular structure
//     without padding every column to equal width.
func markdownConverter() *converter.Converter {
	mdOnce.Do(func() {
		mdConv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		)
	})
	return mdConv
}

// markdownData converts the page HTML to Markdown. Relative links and image
// sources are resolved against the page's origin so the output stands alone.
func markdownData(rawHTML, pageURL string) (models.MarkdownData, error) {
	md, err := markdownConverter().ConvertString(rawHTML, converter.WithDomain(originOf(pageURL)))
	if err != nil {
		return models.MarkdownData{}, fmt.Errorf("markdown conversion: %w", err)
	}

	return models.MarkdownData{
		Status:   statusSuccess,
		Markdown: truncate(md, maxTextChars),
		Length:   utf8.RuneCountInString(md),
	}, nil
}

// originOf reduces a URL to scheme://host for link resolution.
func originOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
