package scraper

import (
	"iter"

	"github.com/PuerkitoBio/goquery"
)

// HeaderRows is the number of leading header rows on every sofifa table.
const HeaderRows = 2

// Page is the shape of a fetched document: either DataPresent or NoData.
type Page interface {
	page()
}

// DataPresent holds the first table of a document.
type DataPresent struct {
	Table *goquery.Selection
}

// NoData marks a document without any table, e.g. the career page of a player
// with no recorded seasons.
type NoData struct{}

func (DataPresent) page() {}
func (NoData) page()      {}

// PageOf picks the first table below root.
func PageOf(root *goquery.Selection) Page {
	table := root.Find("table").First()
	if table.Length() == 0 {
		return NoData{}
	}
	return DataPresent{Table: table}
}

// Rows yields the data rows of page after skipping the first skip rows. The index
// is the position among the yielded rows. NoData yields nothing.
func Rows(p Page, skip int) iter.Seq2[int, *goquery.Selection] {
	return func(yield func(int, *goquery.Selection) bool) {
		data, ok := p.(DataPresent)
		if !ok || data.Table == nil {
			return
		}
		rows := data.Table.Find("tr")
		for i := skip; i < rows.Length(); i++ {
			if !yield(i-skip, rows.Eq(i)) {
				return
			}
		}
	}
}

// DataRows is Rows with the standard header offset.
func DataRows(p Page) iter.Seq2[int, *goquery.Selection] {
	return Rows(p, HeaderRows)
}
