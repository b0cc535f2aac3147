package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/httputil"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExtractTable(t *testing.T) {
	table, err := ExtractTable(readFixture(t, "senate.html"))
	if err != nil {
		t.Fatalf("ExtractTable() error: %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("rows = %d, want 5", len(table))
	}
	if len(table[1]) != GroupSize {
		t.Fatalf("cells = %d, want %d", len(table[1]), GroupSize)
	}
	if table[1][0] != "1" {
		t.Errorf("cell text should be trimmed, got %q", table[1][0])
	}
}

func TestExtractTableMissing(t *testing.T) {
	_, err := ExtractTable(`<html><table><tr><td>x</td></tr></table></html>`)
	if err != ErrNoTable {
		t.Errorf("err = %v, want ErrNoTable", err)
	}
}

func TestExtractTables(t *testing.T) {
	tables, err := ExtractTables(readFixture(t, "historic.html"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(tables))
	}
}

func TestParseTable(t *testing.T) {
	table, _ := ExtractTable(readFixture(t, "senate.html"))
	scores, skipped := ParseTable(table)

	want := []congress.Score{
		{Number: 1, FirstName: "Susan", LastName: "Collins", State: "ME", Party: congress.Republican, Score: 2.53},
		{Number: 2, FirstName: "Joe", LastName: "Manchin", State: "WV", Party: congress.Democrat, Score: 1.20},
		{Number: 4, FirstName: "Bernie", LastName: "Sanders", State: "VT", Party: congress.Democrat, Score: -1.60},
	}
	if len(scores) != len(want) {
		t.Fatalf("scores = %+v", scores)
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Errorf("scores[%d] = %+v, want %+v", i, scores[i], want[i])
		}
	}
	if len(skipped) != 1 || skipped[0].Row != 3 {
		t.Errorf("skipped = %v, want the independent in row 3", skipped)
	}
}

func TestParseTableGroups(t *testing.T) {
	group := func(n, party, score string) []string {
		return []string{n, "F", "L", "XX", party, score, "", "", "", "", "", "", ""}
	}
	tests := []struct {
		name    string
		table   Table
		want    int
		skipped int
	}{
		{"header only", Table{{"Rank"}}, 0, 0},
		{"empty", nil, 0, 0},
		{"one group", Table{{}, group("1", "R", "1.0")}, 1, 0},
		{"two groups", Table{{}, append(group("1", "R", "1.0"), group("2", "D", "-1.0")...)}, 2, 0},
		{"short trailing group", Table{{}, append(group("1", "R", "1.0"), "2", "A", "B")}, 1, 0},
		{"short row", Table{{}, group("1", "R", "1.0")[:12]}, 0, 0},
		{"bad score", Table{{}, group("1", "R", "n/a")}, 0, 1},
		{"bad rank", Table{{}, group("x", "R", "1.0")}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, skipped := ParseTable(tt.table)
			if scores == nil {
				t.Error("scores should be non-nil")
			}
			if len(scores) != tt.want || len(skipped) != tt.skipped {
				t.Errorf("got %d scores, %d skipped; want %d, %d", len(scores), len(skipped), tt.want, tt.skipped)
			}
		})
	}
}

func TestHistoricSession(t *testing.T) {
	h := HistoricSource{Slug: "ourwork-47.html", FirstSessionNo: 112, FirstEndYear: 2012}
	tests := []struct {
		table          int
		no, start, end int
	}{
		{0, 112, 2011, 2012},
		{1, 111, 2009, 2010},
		{9, 103, 1993, 1994},
	}
	for _, tt := range tests {
		no, start, end := h.Session(tt.table)
		if no != tt.no || start != tt.start || end != tt.end {
			t.Errorf("Session(%d) = %d %d-%d, want %d %d-%d", tt.table, no, start, end, tt.no, tt.start, tt.end)
		}
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if c.Sessions[0].SessionNo != 118 || c.Sessions[0].EndYear != 0 {
		t.Errorf("first source = %+v", c.Sessions[0])
	}
	if got := c.PageURL("ourwork-85.html"); got != "https://www.thelugarcenter.org/ourwork-85.html" {
		t.Errorf("PageURL() = %q", got)
	}
	if c.PageURL("") != "" {
		t.Error("PageURL of an empty slug should be empty")
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.toml"))
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if len(c.Sessions) != 1 || c.Sessions[0].HouseSlug != "house.html" || c.Sessions[0].EndYear != 2022 {
		t.Errorf("Sessions = %+v", c.Sessions)
	}
	if len(c.Historic) != 1 || c.Historic[0].FirstSessionNo != 112 {
		t.Errorf("Historic = %+v", c.Historic)
	}
}

func TestLoadCatalogInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[[session]]\nnumber = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("LoadCatalog() should reject a session without start_year")
	}
}

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	senate := readFixture(t, "senate.html")
	historic := readFixture(t, "historic.html")
	mux := http.NewServeMux()
	mux.HandleFunc("/senate.html", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(senate)) })
	mux.HandleFunc("/house.html", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(senate)) })
	mux.HandleFunc("/historic.html", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(historic)) })
	mux.HandleFunc("/empty.html", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("<html></html>")) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testCatalog(base string) Catalog {
	return Catalog{
		BaseURL: base,
		Sessions: []Source{
			{SessionNo: 118, StartYear: 2023, SenateSlug: "senate.html", HouseSlug: "house.html"},
			{SessionNo: 117, StartYear: 2021, EndYear: 2022, SenateSlug: "senate.html"},
		},
		Historic: []HistoricSource{{Slug: "historic.html", FirstSessionNo: 112, FirstEndYear: 2012}},
	}
}

func TestScraperRun(t *testing.T) {
	srv := newFixtureServer(t)
	client := httputil.NewClient(nil, httputil.WithRetry(1, time.Millisecond))

	var visited []string
	res, err := New(client, testCatalog(srv.URL), WithProgress(func(url string) {
		visited = append(visited, url)
	})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(visited) != 4 {
		t.Errorf("progress calls = %d, want 4", len(visited))
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}

	gotNos := []int{}
	for _, s := range res.Dataset {
		gotNos = append(gotNos, s.SessionNo)
	}
	wantNos := []int{118, 117, 112, 111}
	if len(gotNos) != len(wantNos) {
		t.Fatalf("sessions = %v, want %v", gotNos, wantNos)
	}
	for i := range wantNos {
		if gotNos[i] != wantNos[i] {
			t.Errorf("sessions = %v, want %v", gotNos, wantNos)
			break
		}
	}

	first := res.Dataset[0]
	if first.EndYear != nil {
		t.Errorf("118th EndYear = %v, want nil", *first.EndYear)
	}
	if len(first.SenateScores) != 3 || len(first.HouseScores) != 3 {
		t.Errorf("118th senate=%d house=%d", len(first.SenateScores), len(first.HouseScores))
	}
	if first.SenateURL != srv.URL+"/senate.html" {
		t.Errorf("SenateURL = %q", first.SenateURL)
	}

	second := res.Dataset[1]
	if _, ok := second.Scores(congress.House); ok {
		t.Error("117th has no house page and should have no house chamber")
	}

	hist := res.Dataset[3]
	if hist.StartYear != 2009 || hist.EndYear == nil || *hist.EndYear != 2010 {
		t.Errorf("111th years = %d-%v", hist.StartYear, hist.EndYear)
	}
	if len(hist.SenateScores) != 1 || hist.SenateScores[0].LastName != "Specter" {
		t.Errorf("111th senate = %+v", hist.SenateScores)
	}

	if res.Pages != 4 || res.Skipped != 3 {
		t.Errorf("pages=%d skipped=%d, want 4 and 3", res.Pages, res.Skipped)
	}
	if err := congress.Validate(res.Dataset); err != nil {
		t.Errorf("scraped dataset should validate: %v", err)
	}
}

func TestScraperMissingTable(t *testing.T) {
	srv := newFixtureServer(t)
	client := httputil.NewClient(nil, httputil.WithRetry(1, time.Millisecond))
	cat := Catalog{BaseURL: srv.URL, Sessions: []Source{{SessionNo: 1, StartYear: 1789, SenateSlug: "empty.html"}}}

	_, err := New(client, cat).Run(context.Background())
	if !errors.Is(err, errors.ErrCodeScrapeFailed) {
		t.Errorf("err = %v, want SCRAPE_FAILED", err)
	}
}

func TestScraperNotFound(t *testing.T) {
	srv := newFixtureServer(t)
	client := httputil.NewClient(nil, httputil.WithRetry(1, time.Millisecond))
	cat := Catalog{BaseURL: srv.URL, Sessions: []Source{{SessionNo: 1, StartYear: 1789, SenateSlug: "gone.html"}}}

	_, err := New(client, cat).Run(context.Background())
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestScraperCancelled(t *testing.T) {
	srv := newFixtureServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := httputil.NewClient(nil, httputil.WithRetry(1, time.Millisecond))
	if _, err := New(client, testCatalog(srv.URL)).Run(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
