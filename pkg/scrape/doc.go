// Package scrape collects bipartisan index tables from the scoring site and
// turns them into a [congress.Dataset].
//
// # Sources
//
// A [Catalog] lists the pages to visit. Each [Source] names one Congress with
// a senate page and a house page. A [HistoricSource] names a page holding
// many senate tables, newest first; table k on that page is session
// FirstSessionNo-k spanning the two years ending FirstEndYear-2k.
//
// [DefaultCatalog] covers the 113th through 118th Congresses plus the
// historic senate page. A TOML file can replace it:
//
//	base_url = "https://www.thelugarcenter.org/"
//
//	[[session]]
//	number = 118
//	start_year = 2023
//	senate = "ourwork-85.html"
//	house = "ourwork-86.html"
//
//	[[historic]]
//	slug = "ourwork-47.html"
//	first_session = 112
//	first_end_year = 2012
//
// # Extraction
//
// Score tables are the elements with cellpadding="2" (see [ExtractTables]).
// Every data row carries the same members twice, in 13-cell groups; only the
// first six cells of a group are read (see [ParseTable]).
package scrape
