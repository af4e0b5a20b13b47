package fallback

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobsift/jobsift/internal/model"
)

// jobKeywords substring-match class/id attributes of candidate containers.
var jobKeywords = []string{"job", "opening", "position", "career", "opportunity", "vacancy", "role"}

var (
	locationClassRegex = regexp.MustCompile(`(?i)location`)
	inlineLocationRegex = regexp.MustCompile(`\b(Remote|Hybrid|Onsite|On-site)\b`)
)

// FetchDOM scrapes pageURL for anchors that plausibly point at job postings,
// keyed on job-related class/id substrings. It is the very last resort and
// intentionally loose: the location filter downstream discards what it
// cannot place.
func (e *Extractor) FetchDOM(ctx context.Context, pageURL string, limit int) []model.JobPosting {
	doc, err := e.c.GetDoc(ctx, pageURL)
	if err != nil {
		return nil
	}
	return domFromDoc(doc, pageURL, limit)
}

func domFromDoc(doc *goquery.Document, pageURL string, limit int) []model.JobPosting {
	var selectors []string
	for _, kw := range jobKeywords {
		selectors = append(selectors, "[class*='"+kw+"']", "[id*='"+kw+"']")
	}
	containers := doc.Find(strings.Join(selectors, ", "))

	anchors := containers.Find("a[href]")
	if anchors.Length() == 0 {
		anchors = doc.Find("a[href]")
	}

	origin := pageOrigin(pageURL)
	seen := make(map[string]struct{})
	var jobs []model.JobPosting
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())
		if href == "" || len([]rune(text)) < 2 {
			return true
		}
		if !strings.Contains(href, "job") &&
			!strings.Contains(href, "career") &&
			!strings.Contains(href, "join") &&
			!strings.Contains(href, "position") &&
			!strings.HasPrefix(href, "/") {
			return true
		}

		jobURL := href
		if !strings.HasPrefix(href, "http") {
			jobURL = origin + href
		}
		if _, dup := seen[jobURL]; dup {
			return true
		}
		seen[jobURL] = struct{}{}

		jobs = append(jobs, model.JobPosting{
			Title:     text,
			Location:  nearbyLocation(a),
			URL:       jobURL,
			SourceURL: pageURL,
		})
		return len(jobs) < limit
	})
	return jobs
}

// nearbyLocation looks for a location-like element beside the anchor, then
// falls back to scanning the parent's text for a work-mode token.
func nearbyLocation(a *goquery.Selection) string {
	parent := a.Parent()
	if parent.Length() == 0 {
		return ""
	}

	loc := ""
	parent.Find("[class], [data-location]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if v, ok := el.Attr("data-location"); ok && strings.TrimSpace(v) != "" {
			loc = strings.TrimSpace(v)
			return false
		}
		if class, ok := el.Attr("class"); ok && locationClassRegex.MatchString(class) {
			loc = strings.TrimSpace(el.Text())
			return false
		}
		return true
	})
	if loc != "" {
		return loc
	}

	if m := inlineLocationRegex.FindStringSubmatch(parent.Text()); m != nil {
		return m[1]
	}
	return ""
}

func pageOrigin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(pageURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
