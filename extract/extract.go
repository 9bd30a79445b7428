// Package extract shapes a fetched page into one of the fixed scrape payload
// forms. Every mode applies hard truncation limits so a single scrape can
// never produce an unbounded response.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/scrapeboard/models"
)

// Hard truncation limits per extraction mode.
const (
	maxLinks       = 50
	maxImages      = 50
	maxElements    = 30
	maxTextChars   = 5000
	maxFieldChars  = 100 // link text, image alt
	maxElementText = 200 // css-selected element text
)

const statusSuccess = "success"

// Apply parses rawHTML and returns the payload for the requested extraction
// mode. Mode "css" without a selector, or an unrecognized mode, yields a
// bare status payload. The only error cases are unparseable HTML, an invalid
// CSS selector, and a failed markdown/article conversion.
func Apply(rawHTML, pageURL, mode, selectors string) (any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	switch mode {
	case models.ExtractFull:
		return fullData(doc, rawHTML), nil
	case models.ExtractText:
		return models.TextData{
			Status: statusSuccess,
			Text:   truncate(pageText(doc), maxTextChars),
		}, nil
	case models.ExtractLinks:
		return linksData(doc), nil
	case models.ExtractImages:
		return imagesData(doc), nil
	case models.ExtractCSS:
		if selectors == "" {
			return models.StatusOnlyData{Status: statusSuccess}, nil
		}
		return cssData(doc, selectors)
	case models.ExtractMarkdown:
		return markdownData(rawHTML, pageURL)
	case models.ExtractArticle:
		return articleData(rawHTML, pageURL)
	default:
		return models.StatusOnlyData{Status: statusSuccess}, nil
	}
}

// fullData summarises the page without returning its content.
func fullData(doc *goquery.Document, rawHTML string) models.FullData {
	htmlLength := utf8.RuneCountInString(rawHTML)
	if body, err := goquery.OuterHtml(doc.Find("body").First()); err == nil && body != "" {
		htmlLength = utf8.RuneCountInString(body)
	}

	return models.FullData{
		Status:     statusSuccess,
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		TextLength: utf8.RuneCountInString(pageText(doc)),
		HTMLLength: htmlLength,
		LinkCount:  doc.Find("a[href]").Length(),
		ImageCount: doc.Find("img").Length(),
	}
}

func linksData(doc *goquery.Document) models.LinksData {
	links := []models.Link{}
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxLinks {
			return false
		}
		href, _ := s.Attr("href")
		links = append(links, models.Link{
			Href: href,
			Text: truncate(strings.TrimSpace(s.Text()), maxFieldChars),
		})
		return true
	})
	return models.LinksData{Status: statusSuccess, Links: links}
}

func imagesData(doc *goquery.Document) models.ImagesData {
	images := []models.Image{}
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxImages {
			return false
		}
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		images = append(images, models.Image{
			Src: src,
			Alt: truncate(alt, maxFieldChars),
		})
		return true
	})
	return models.ImagesData{Status: statusSuccess, Images: images}
}

// cssData returns the text of elements matching the selector group. The
// selector is compiled with cascadia so a malformed selector surfaces as a
// descriptive error instead of matching nothing.
func cssData(doc *goquery.Document, selectors string) (models.CSSData, error) {
	sel, err := cascadia.Compile(selectors)
	if err != nil {
		return models.CSSData{}, fmt.Errorf("invalid selector %q: %w", selectors, err)
	}

	elements := []string{}
	doc.FindMatcher(sel).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxElements {
			return false
		}
		elements = append(elements, truncate(strings.TrimSpace(s.Text()), maxElementText))
		return true
	})
	return models.CSSData{Status: statusSuccess, Elements: elements}, nil
}

// pageText returns the page's visible text with runs of whitespace collapsed
// to single spaces. Falls back to the whole document when there is no <body>.
func pageText(doc *goquery.Document) string {
	sel := doc.Find("body")
	text := sel.Text()
	if sel.Length() == 0 {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " ")
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
