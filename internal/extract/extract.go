package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DataCallbackMarker names the inline callback the Play listing page uses to
// embed page data. The page carries dozens of unrelated scripts; requiring
// both this marker and the application identifier in the same block is what
// singles out the one holding version data.
const DataCallbackMarker = "AF_initDataCallback"

// bodyRegex is a deliberately lenient span match. goquery's html5 parser
// synthesizes a <body> node even for body-less markup, which would defeat
// the "no body, no result" contract, so the span check stays regex-based.
var bodyRegex = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

// versionPatterns is ordered most specific first. Patterns iterate in the
// outer loop over candidate scripts so a permissive pattern never preempts
// a stricter one, even when it would match an earlier script.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\["(\d+\.\d+\.\d+)"\]`),
	regexp.MustCompile(`\['(\d+\.\d+\.\d+)'\]`),
	regexp.MustCompile(`"(\d+\.\d+\.\d+)"`),
	regexp.MustCompile(`'(\d+\.\d+\.\d+)'`),
	regexp.MustCompile(`\d+\.\d+\.\d+`),
}

var keyedVersionRegex = regexp.MustCompile(`versionName['"]?\s*[:=]\s*['"](\d+\.\d+\.\d+)`)

// ScriptVersion mines a version string out of a provider HTML document.
// It isolates the <body> region, collects the <script> blocks containing
// both marker and DataCallbackMarker, and tries increasingly permissive
// extraction strategies against them: first evaluating the data-callback
// payload itself, then the ordered textual patterns. It returns "" when the
// document yields no version, never an error; providers that change markup
// shape degrade gracefully.
func ScriptVersion(document, marker string) string {
	if document == "" {
		return ""
	}

	bodyMatch := bodyRegex.FindStringSubmatch(document)
	if len(bodyMatch) < 2 {
		return ""
	}

	candidates := candidateScripts(bodyMatch[1], marker)
	if len(candidates) == 0 {
		return ""
	}

	for _, script := range candidates {
		if version := dataCallbackVersion(script); version != "" {
			return version
		}
	}

	for _, pattern := range versionPatterns {
		for _, script := range candidates {
			match := pattern.FindStringSubmatch(script)
			if match == nil {
				continue
			}
			if len(match) > 1 {
				return match[1]
			}
			return match[0]
		}
	}

	return ""
}

// candidateScripts parses the body region and returns the text of every
// <script> block containing both required substrings, in document order.
func candidateScripts(bodyRegion, marker string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyRegion))
	if err != nil {
		return nil
	}

	var scripts []string
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		text := s.Text()
		if strings.Contains(text, marker) && strings.Contains(text, DataCallbackMarker) {
			scripts = append(scripts, text)
		}
	})
	return scripts
}

// KeyedVersion matches the single fixed versionName:"x.y.z" shape against a
// whole response body. The OEM listing markup is stable enough not to need
// the script cascade.
func KeyedVersion(body string) string {
	match := keyedVersionRegex.FindStringSubmatch(body)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
