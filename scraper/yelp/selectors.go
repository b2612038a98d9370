package yelp

// Selectors used across the scraper. CSS selectors run against goquery
// snapshots; the *JS constants are expressions evaluated inside the browser.
const (
	// Search results page
	ListingSelector     = `div[class*="businessName__09f24__HG_pC"]`
	ListingLinkSelector = `h3 > a`

	// Pagination
	NextPageLabel    = "Next Page"
	NextPageSpanJS   = `Array.from(document.querySelectorAll('span')).find(s => Array.from(s.childNodes).some(n => n.nodeType === Node.TEXT_NODE && n.textContent.includes('` + NextPageLabel + `')))`
	NextPageButtonJS = `(` + NextPageSpanJS + `)?.closest('button')`

	// Detail page
	BodyReadyJS         = `document.body`
	NameSelector        = `h1`
	CategorySelector    = `a[href*="find_desc"]`
	ClaimedSelector     = `span[aria-hidden="true"]`
	ClosedLabel         = "Closed"
	HoursTableSelector  = `section[aria-label="Location & Hours"] table, table:containsOwn("Location & Hours")`
	PhotoSelector       = `img[aria-label="Photos & videos"]`
	ServicesSelector    = `section[aria-label="Services Offered"]`
	DescriptionSelector = `section[aria-label="About the Business"]`
	ReviewsLinkSelector = `a[href*="#reviews"]`
	AddressSelector     = `address`
	PhoneLabel          = "Phone number"
	RedirectMarker      = "/biz_redir?url="
	AddressUnitMarker   = "Main Floor"
)
