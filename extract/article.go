package extract

import (
	"fmt"
	nurl "net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"github.com/use-agent/scrapeboard/models"
)

// articleData runs the Mozilla Readability algorithm on the page and returns
// its main content as plain text plus the metadata readability recovered.
func articleData(rawHTML, pageURL string) (models.ArticleData, error) {
	parsedURL, err := nurl.Parse(pageURL)
	if err != nil {
		return models.ArticleData{}, fmt.Errorf("article: invalid page URL: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return models.ArticleData{}, fmt.Errorf("article extraction: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	return models.ArticleData{
		Status:   statusSuccess,
		Title:    article.Title,
		Byline:   article.Byline,
		Excerpt:  article.Excerpt,
		SiteName: article.SiteName,
		Text:     truncate(text, maxTextChars),
		Length:   utf8.RuneCountInString(text),
	}, nil
}
