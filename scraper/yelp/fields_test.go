package yelp

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"yelp-scraper/models"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseDetailFullPage(t *testing.T) {
	rec := &models.BusinessRecord{URL: "https://www.yelp.com/biz/the-second-chance-foundation-toronto-3"}
	if failed := ParseDetail(fixtureDoc(t, "detail.html"), rec); len(failed) != 0 {
		t.Fatalf("failed fields: %v", failed)
	}

	checkString(t, "name", rec.Name, "The Second Chance Foundation")
	checkString(t, "category", rec.Category, "Community Service/Non-Profit")
	checkString(t, "claimed", rec.Claimed, "Claimed")
	checkString(t, "closed", rec.Closed, "9:00 AM - 5:00 PM")
	checkString(t, "description", rec.Description, "Helping families get back on their feet.")
	checkString(t, "street", rec.Street, "123 Main St")
	checkString(t, "unit", rec.Unit, "Unit 4")
	checkString(t, "city", rec.CityStatePostal, "Toronto, ON M1M1M1")
	checkString(t, "website", rec.Website, "https://secondchance.example.org/home")
	checkString(t, "phone", rec.Phone, "(416) 555-0199")
	if rec.Country != nil {
		t.Errorf("country = %q, want nil", *rec.Country)
	}

	if rec.Reviews == nil || *rec.Reviews != 4.5 {
		t.Errorf("reviews = %v, want 4.5", rec.Reviews)
	}
	if len(rec.Hours) != 2 || rec.Hours["Mon"] != "9:00 AM - 5:00 PM" || rec.Hours["Tue"] != "Closed" {
		t.Errorf("hours = %v", rec.Hours)
	}
	if len(rec.Photos) != 2 || !strings.HasSuffix(rec.Photos[1], "/b2/o.jpg") {
		t.Errorf("photos = %v", rec.Photos)
	}
	if strings.Join(rec.ServicesOffered, "|") != "Food Banks|Youth Programs" {
		t.Errorf("services = %v", rec.ServicesOffered)
	}
}

func TestParseDetailMissingAnchors(t *testing.T) {
	rec := &models.BusinessRecord{URL: "https://www.yelp.com/biz/corner-shelter-hamilton"}
	ParseDetail(fixtureDoc(t, "detail_sparse.html"), rec)

	checkString(t, "name", rec.Name, "Corner Shelter")
	checkString(t, "street", rec.Street, "55 King St W")
	checkString(t, "city", rec.CityStatePostal, "Hamilton, ON L8P 1A1")
	checkString(t, "country", rec.Country, "Canada")

	if rec.Description != nil {
		t.Errorf("description = %q, want nil without an About the Business section", *rec.Description)
	}
	for name, v := range map[string]*string{
		"category": rec.Category, "claimed": rec.Claimed, "closed": rec.Closed,
		"unit": rec.Unit, "website": rec.Website, "phone": rec.Phone,
	} {
		if v != nil {
			t.Errorf("%s = %q, want nil", name, *v)
		}
	}
	if rec.Reviews != nil {
		t.Errorf("unparseable rating should be nil, got %v", *rec.Reviews)
	}
	if rec.Hours != nil || rec.ServicesOffered != nil {
		t.Errorf("hours/services should be nil, got %v / %v", rec.Hours, rec.ServicesOffered)
	}
	if rec.Photos == nil || len(rec.Photos) != 0 {
		t.Errorf("photos = %#v, want empty non-nil list", rec.Photos)
	}
}

func TestDescriptionAbsenceLeavesOthers(t *testing.T) {
	full := fixture(t, "detail.html")
	start := strings.Index(full, `<section aria-label="About the Business">`)
	end := strings.Index(full[start:], "</section>") + start + len("</section>")
	stripped := full[:start] + full[end:]

	withDesc := &models.BusinessRecord{}
	ParseDetail(docFromString(t, full), withDesc)
	without := &models.BusinessRecord{}
	ParseDetail(docFromString(t, stripped), without)

	if without.Description != nil {
		t.Fatalf("description = %q, want nil", *without.Description)
	}
	withDesc.Description = nil
	if a, b := recordSignature(withDesc), recordSignature(without); a != b {
		t.Errorf("other fields changed:\n%s\n%s", a, b)
	}
}

func TestLabelAnchorsAreCaseSensitive(t *testing.T) {
	doc := docFromString(t, `<html><body>
		<div><span>Patio enclosed</span><span>Yes</span></div>
		<div><span>Closed</span><span>9-5</span></div>
		<div><p>Call our phone number</p><p>not-a-phone</p></div>
		<div><p>Phone number</p><p>555</p></div>
	</body></html>`)
	rec := &models.BusinessRecord{}
	ParseDetail(doc, rec)

	checkString(t, "closed", rec.Closed, "9-5")
	checkString(t, "phone", rec.Phone, "555")
}

func TestOwnTextIgnoresDescendants(t *testing.T) {
	doc := docFromString(t, `<div><p>Phone <b>number</b></p><p>x</p></div>`)
	if got := withOwnText(doc.Selection, "p", PhoneLabel).Length(); got != 0 {
		t.Errorf("matched %d paragraphs, want 0 when the label spans a child element", got)
	}
}

func TestReviewsUsesFirstPrecedingSpan(t *testing.T) {
	doc := docFromString(t, `<div><span>3.5</span><span>(sponsored)</span><a href="#reviews">12 reviews</a></div>`)
	rec := &models.BusinessRecord{}
	ParseDetail(doc, rec)
	if rec.Reviews == nil || *rec.Reviews != 3.5 {
		t.Errorf("reviews = %v, want 3.5 from the first span in document order", rec.Reviews)
	}
}

func TestRunFieldRecoversPanic(t *testing.T) {
	rec := &models.BusinessRecord{}
	boom := fieldExtractor{"boom", func(*goquery.Document, *models.BusinessRecord) { panic(errors.New("stale element")) }}
	if err := runField(boom, docFromString(t, "<html></html>"), rec); err == nil {
		t.Fatal("expected an error from a panicking extractor")
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		ok         bool
		street     string
		unit       string
		city       string
		country    string
	}{
		{
			name:       "main floor marker",
			paragraphs: []string{"123 Main St", "Main Floor", "Unit 4", "Toronto, ON M1M1M1"},
			ok:         true, street: "123 Main St", unit: "Unit 4", city: "Toronto, ON M1M1M1",
		},
		{
			name:       "no marker",
			paragraphs: []string{"123 Main St", "Toronto, ON M1M1M1"},
			ok:         true, street: "123 Main St", city: "Toronto, ON M1M1M1",
		},
		{
			name:       "country line",
			paragraphs: []string{"55 King St W", "Hamilton, ON L8P 1A1", "Canada"},
			ok:         true, street: "55 King St W", city: "Hamilton, ON L8P 1A1", country: "Canada",
		},
		{name: "street only", paragraphs: []string{"123 Main St"}},
		{name: "marker without city line", paragraphs: []string{"123 Main St", "Main Floor", "Unit 4"}},
		{name: "empty", paragraphs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, ok := ParseAddress(tt.paragraphs)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				if addr.Street != nil || addr.Unit != nil || addr.CityStatePostal != nil {
					t.Errorf("failed parse should leave every part nil: %+v", addr)
				}
				return
			}
			checkOptional(t, "street", addr.Street, tt.street)
			checkOptional(t, "unit", addr.Unit, tt.unit)
			checkOptional(t, "city", addr.CityStatePostal, tt.city)
			checkOptional(t, "country", addr.Country, tt.country)
		})
	}
}

func TestDecodeRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/biz_redir?url=https%3A%2F%2Fexample.com&cta=1", "https://example.com"},
		{"https://www.yelp.com/biz_redir?url=http%3A%2F%2Fa.org%2Fb%2Fc", "http://a.org/b/c"},
		// only ':' and '/' are unescaped
		{"/biz_redir?url=https%3A%2F%2Fexample.com%3Fq%3D1&s=2", "https://example.com%3Fq%3D1"},
		{"/biz_redir?cta=1", ""},
	}
	for _, tt := range tests {
		if got := DecodeRedirect(tt.href); got != tt.want {
			t.Errorf("DecodeRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func checkString(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %q", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", field, *got, want)
	}
}

// checkOptional treats an empty want as "must be nil".
func checkOptional(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("%s = %q, want nil", field, *got)
		}
		return
	}
	checkString(t, field, got, want)
}

func recordSignature(r *models.BusinessRecord) string {
	deref := func(s *string) string {
		if s == nil {
			return "<nil>"
		}
		return *s
	}
	parts := []string{
		deref(r.Name), deref(r.Category), deref(r.Claimed), deref(r.Closed), deref(r.Description),
		deref(r.Street), deref(r.Unit), deref(r.CityStatePostal), deref(r.Country),
		deref(r.Website), deref(r.Phone),
		strings.Join(r.Photos, ","), strings.Join(r.ServicesOffered, ","),
		r.Hours["Mon"] + r.Hours["Tue"],
	}
	if r.Reviews != nil {
		parts = append(parts, "rated")
	}
	return strings.Join(parts, "|")
}
