package scrape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector matches the score tables on the scoring site.
const TableSelector = `[cellpadding="2"]`

// ErrNoTable is returned when a page has no score table.
var ErrNoTable = errors.New("no score table")

// Table is a score table as rows of trimmed cell texts.
type Table [][]string

// ExtractTables returns every score table in html, in document order.
func ExtractTables(html string) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var tables []Table
	doc.Find(TableSelector).Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, readTable(sel))
	})
	return tables, nil
}

// ExtractTable returns the first score table in html.
func ExtractTable(html string) (Table, error) {
	tables, err := ExtractTables(html)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTable
	}
	return tables[0], nil
}

func readTable(sel *goquery.Selection) Table {
	var rows Table
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := []string{}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, cells)
	})
	return rows
}
