package ingest

import (
	"path"
	"strings"
)

// lawCategory maps filename keywords to a law type tag. Rules are checked
// in order; the first matching keyword wins.
type lawCategory struct {
	keywords []string
	lawType  string
}

var lawCategories = []lawCategory{
	{keywords: []string{"civil"}, lawType: "civil_law"},
	{keywords: []string{"criminal", "penal"}, lawType: "criminal_law"},
	{keywords: []string{"labor", "labour", "employment"}, lawType: "labor_law"},
	{keywords: []string{"company", "companies", "commercial"}, lawType: "company_law"},
	{keywords: []string{"traffic"}, lawType: "traffic_law"},
	{keywords: []string{"sharia", "shariah", "islamic"}, lawType: "sharia_law"},
	{keywords: []string{"board", "grievance", "administrative"}, lawType: "administrative_law"},
	{keywords: []string{"basic", "governance", "constitution"}, lawType: "constitutional_law"},
}

// CategorizeLaw derives a law type tag from a corpus filename. Unmatched
// filenames fall back to the general tag.
func CategorizeLaw(filename string) string {
	name := strings.ToLower(path.Base(filename))
	for _, cat := range lawCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(name, kw) {
				return cat.lawType
			}
		}
	}
	return "general_law"
}
