package storage

import (
	"encoding/json"
	"strconv"

	"yelp-scraper/models"
)

// Header is the CSV column order
var Header = []string{
	"Name", "Category", "Claimed", "Closed", "Hours", "Photos", "Services Offered",
	"Description", "Street", "Unit", "City/State/Postal Code", "Country", "Website",
	"Phone Number", "Reviews",
}

// Row renders rec in Header order. Absent fields are empty cells.
func Row(rec *models.BusinessRecord) []string {
	return []string{
		text(rec.Name),
		text(rec.Category),
		text(rec.Claimed),
		text(rec.Closed),
		jsonCell(rec.Hours),
		jsonCell(rec.Photos),
		jsonCell(rec.ServicesOffered),
		text(rec.Description),
		text(rec.Street),
		text(rec.Unit),
		text(rec.CityStatePostal),
		text(rec.Country),
		text(rec.Website),
		text(rec.Phone),
		rating(rec.Reviews),
	}
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rating(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// jsonCell encodes maps and lists; nil encodes as an empty cell
func jsonCell(v interface{}) string {
	switch t := v.(type) {
	case map[string]string:
		if t == nil {
			return ""
		}
	case []string:
		if t == nil {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// sqlArgs returns the database columns of rec, url first, in the order the
// sinks insert them. Absent fields are NULL; a present field keeps its value
// even when it is empty.
func sqlArgs(rec *models.BusinessRecord) []interface{} {
	args := []interface{}{
		rec.URL,
		optText(rec.Name),
		optText(rec.Category),
		optText(rec.Claimed),
		optText(rec.Closed),
		nil, nil, nil,
		optText(rec.Description),
		optText(rec.Street),
		optText(rec.Unit),
		optText(rec.CityStatePostal),
		optText(rec.Country),
		optText(rec.Website),
		optText(rec.Phone),
		nil,
	}
	if rec.Hours != nil {
		args[5] = jsonCell(rec.Hours)
	}
	if rec.Photos != nil {
		args[6] = jsonCell(rec.Photos)
	}
	if rec.ServicesOffered != nil {
		args[7] = jsonCell(rec.ServicesOffered)
	}
	if rec.Reviews != nil {
		args[15] = *rec.Reviews
	}
	return args
}

func optText(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
