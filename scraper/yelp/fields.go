package yelp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"yelp-scraper/models"
)

// fieldExtractor fills one part of a record from a detail-page snapshot.
// It must leave the record untouched when its anchor is missing.
type fieldExtractor struct {
	name string
	fn   func(doc *goquery.Document, rec *models.BusinessRecord)
}

var detailFields = []fieldExtractor{
	{"name", extractName},
	{"category", extractCategory},
	{"claimed", extractClaimed},
	{"closed", extractClosed},
	{"hours", extractHours},
	{"photos", extractPhotos},
	{"services", extractServices},
	{"description", extractDescription},
	{"reviews", extractReviews},
	{"address", extractAddress},
	{"website", extractWebsite},
	{"phone", extractPhone},
}

// ParseDetail runs every field extractor over doc. Each field is isolated:
// a failure leaves that field nil and the rest are still extracted. The
// names of failed extractors are returned.
func ParseDetail(doc *goquery.Document, rec *models.BusinessRecord) []string {
	var failed []string
	for _, f := range detailFields {
		if err := runField(f, doc, rec); err != nil {
			failed = append(failed, f.name)
		}
	}
	return failed
}

func runField(f fieldExtractor, doc *goquery.Document, rec *models.BusinessRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", f.name, r)
		}
	}()
	f.fn(doc, rec)
	return nil
}

func extractName(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Name = firstText(doc.Find(NameSelector))
}

func extractCategory(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Category = firstText(doc.Find(CategorySelector))
}

func extractClaimed(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Claimed = firstText(doc.Find(ClaimedSelector).First().NextAllFiltered("span"))
}

func extractClosed(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Closed = firstText(withOwnText(doc.Selection, "span", ClosedLabel).First().NextAllFiltered("span"))
}

func extractHours(doc *goquery.Document, rec *models.BusinessRecord) {
	table := doc.Find(HoursTableSelector).First()
	if table.Length() == 0 {
		return
	}

	var days []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		days = append(days, strings.TrimSpace(th.Find("p").First().Text()))
	})
	var hours []string
	table.Find("td").Each(func(_ int, td *goquery.Selection) {
		td.Find("ul").Each(func(_ int, ul *goquery.Selection) {
			hours = append(hours, strings.TrimSpace(ul.Find("p").First().Text()))
		})
	})

	// zip: extra days or hours beyond the shorter list are dropped
	out := make(map[string]string, len(days))
	for i := 0; i < len(days) && i < len(hours); i++ {
		out[days[i]] = hours[i]
	}
	rec.Hours = out
}

func extractPhotos(doc *goquery.Document, rec *models.BusinessRecord) {
	photos := []string{}
	doc.Find(PhotoSelector).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			photos = append(photos, src)
		}
	})
	rec.Photos = photos
}

func extractServices(doc *goquery.Document, rec *models.BusinessRecord) {
	section := doc.Find(ServicesSelector).First()
	if section.Length() == 0 {
		return
	}
	services := []string{}
	section.Find(CategorySelector).Each(func(_ int, a *goquery.Selection) {
		services = append(services, strings.TrimSpace(a.Text()))
	})
	rec.ServicesOffered = services
}

func extractDescription(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Description = firstText(doc.Find(DescriptionSelector).First().Find("p"))
}

func extractReviews(doc *goquery.Document, rec *models.BusinessRecord) {
	// first preceding span in document order, i.e. the farthest sibling
	span := doc.Find(ReviewsLinkSelector).First().PrevAllFiltered("span").Last()
	if span.Length() == 0 {
		return
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(span.Text()), 64)
	if err != nil {
		return
	}
	rec.Reviews = &rating
}

func extractAddress(doc *goquery.Document, rec *models.BusinessRecord) {
	address := doc.Find(AddressSelector).First()
	if address.Length() == 0 {
		return
	}
	var paragraphs []string
	address.Find("p").Each(func(_ int, p *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(p.Text()))
	})

	addr, ok := ParseAddress(paragraphs)
	if !ok {
		return
	}
	rec.Street = addr.Street
	rec.Unit = addr.Unit
	rec.CityStatePostal = addr.CityStatePostal
	rec.Country = addr.Country
}

func extractWebsite(doc *goquery.Document, rec *models.BusinessRecord) {
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if !strings.Contains(href, RedirectMarker) {
			return true
		}
		rec.Website = models.String(DecodeRedirect(href))
		return false
	})
}

func extractPhone(doc *goquery.Document, rec *models.BusinessRecord) {
	rec.Phone = firstText(withOwnText(doc.Selection, "p", PhoneLabel).First().NextAllFiltered("p"))
}

// Address is the parsed content of a detail page's address block
type Address struct {
	Street          *string
	Unit            *string
	CityStatePostal *string
	Country         *string
}

// ParseAddress splits address paragraphs into street, unit and city line.
//
// The unit is only recognised through a "Main Floor" paragraph: the line
// after it is the unit and the line after that the city/region/postal code.
// Without the marker the second paragraph is the city line. A trailing
// paragraph after the city line is taken as the country. ok is false when
// the paragraphs run out before the city line.
func ParseAddress(paragraphs []string) (addr Address, ok bool) {
	if len(paragraphs) == 0 {
		return Address{}, false
	}
	addr.Street = models.String(paragraphs[0])

	cityIdx := 1
	for i, p := range paragraphs {
		if strings.Contains(p, AddressUnitMarker) {
			if i+2 >= len(paragraphs) {
				return Address{}, false
			}
			addr.Unit = models.String(paragraphs[i+1])
			cityIdx = i + 2
			break
		}
	}
	if cityIdx >= len(paragraphs) {
		return Address{}, false
	}
	addr.CityStatePostal = models.String(paragraphs[cityIdx])
	if cityIdx+1 < len(paragraphs) {
		addr.Country = models.String(paragraphs[cityIdx+1])
	}
	return addr, true
}

// DecodeRedirect pulls the destination out of a redirect link such as
// "/biz_redir?url=https%3A%2F%2Fexample.com&cta=1". Only %3A and %2F are
// unescaped; anything else stays as it appears in the link.
func DecodeRedirect(href string) string {
	_, target, found := strings.Cut(href, "url=")
	if !found {
		return ""
	}
	target, _, _ = strings.Cut(target, "&")
	return strings.NewReplacer("%3A", ":", "%2F", "/").Replace(target)
}

// withOwnText returns the tag elements under sel whose own text nodes
// contain label. Matching is case-sensitive.
func withOwnText(sel *goquery.Selection, tag, label string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(ownText(s), label)
	})
}

// ownText concatenates the direct text children of s, skipping descendants
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

func firstText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	return models.String(strings.TrimSpace(sel.First().Text()))
}
