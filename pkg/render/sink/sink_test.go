package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

func testSession() congress.Session {
	return congress.Session{
		SessionNo: 117,
		StartYear: 2021,
		EndYear:   congress.Year(2022),
		SenateURL: "https://example.org/senate-117",
		SenateScores: []congress.Score{
			{Number: 1, FirstName: "Ann", LastName: "Able", State: "ME", Party: congress.Republican, Score: 2},
			{Number: 2, FirstName: "Bo", LastName: "Baker", State: "VT", Party: congress.Democrat, Score: -1},
			{Number: 3, FirstName: "Cy", LastName: "Cole", State: "OR", Party: congress.Democrat, Score: -3},
		},
	}
}

func TestInfoLabels(t *testing.T) {
	s := testSession()
	agg := chart.Aggregate(s.SenateScores, s.StartYear)
	got := InfoLabels(congress.Senate, agg)
	want := []string{"Senate", "Majority: D (2 - 1)", "Aggregate Scores: D -4.00 R 2.00"}
	if len(got) != len(want) {
		t.Fatalf("InfoLabels() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}

	var badges []congress.Party
	for _, seg := range InfoPanels(congress.Senate, agg)[2] {
		if seg.Badge != "" {
			badges = append(badges, seg.Badge)
		}
	}
	if len(badges) != len(congress.Parties) || badges[0] != congress.Democrat || badges[1] != congress.Republican {
		t.Errorf("score badges = %v, want %v", badges, congress.Parties)
	}
}

func TestInfoLabelsTieUsesExecutive(t *testing.T) {
	scores := []congress.Score{
		{Party: congress.Republican, Score: 1},
		{Party: congress.Democrat, Score: -1},
	}
	// 2021 is a Democratic administration
	agg := chart.Aggregate(scores, 2021)
	if got := InfoLabels(congress.House, agg)[1]; got != "Majority: D (1 - 1)" {
		t.Errorf("majority label = %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	s := testSession()
	out, err := RenderSVG(&s, congress.Senate, WithSize(613, 200))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output is not an svg document")
	}
	if n := strings.Count(svg, `class="bar"`); n != 3 {
		t.Errorf("bars = %d, want 3", n)
	}
	if !strings.Contains(svg, `class="zero"`) {
		t.Error("missing zero line")
	}
	for _, want := range []string{"Senate", "Majority: ", "Aggregate Scores: ", "117th Congress (2021 - 2022)", "Ann Able (ME-R)"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	// first bar starts at the left edge with width 200 of a 600px data space
	if !strings.Contains(svg, `x="0.00" y="0" width="200.00"`) {
		t.Error("first bar geometry not found")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	s := testSession()
	out, err := RenderSVG(&s, congress.Senate, WithoutInfoBox(), WithStyle(styles.Light))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	if strings.Contains(svg, `class="panel"`) {
		t.Error("info box should be omitted")
	}
	if !strings.Contains(svg, styles.Light.Background()) {
		t.Error("light background not used")
	}
	if !strings.Contains(svg, `width="1200" height="400"`) {
		t.Error("default size not applied")
	}
}

func TestRenderSVGAllPositive(t *testing.T) {
	s := congress.Session{SessionNo: 100, StartYear: 1987, HouseScores: []congress.Score{
		{Number: 1, Party: congress.Republican, Score: 1},
		{Number: 2, Party: congress.Democrat, Score: 0.5},
	}}
	out, err := RenderSVG(&s, congress.House)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), `class="zero"`) {
		t.Error("no negative score, so no zero line expected")
	}
}

func TestRenderSVGChamberNotScored(t *testing.T) {
	s := testSession()
	_, err := RenderSVG(&s, congress.House)
	if !errors.Is(err, errors.ErrCodeChamberNotScored) {
		t.Errorf("err = %v, want CHAMBER_NOT_SCORED", err)
	}
}

func TestRenderSVGEmptyChamber(t *testing.T) {
	s := congress.Session{SessionNo: 90, StartYear: 1967, SenateScores: []congress.Score{}}
	out, err := RenderSVG(&s, congress.Senate)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), `class="bar"`) {
		t.Error("empty chamber should draw no bars")
	}
}

func TestRenderJSON(t *testing.T) {
	s := testSession()
	data, err := RenderJSON(&s, congress.Senate)
	if err != nil {
		t.Fatal(err)
	}
	var got Chart
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.SessionNo != 117 || got.Chamber != congress.Senate || got.SourceURL != s.SenateURL {
		t.Errorf("header = %+v", got)
	}
	if got.Aggregate.ScoreSpace != 6 || got.Aggregate.Majority != congress.Democrat {
		t.Errorf("aggregate = %+v", got.Aggregate)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("entries = %d", len(got.Entries))
	}
	if !got.Entries[1].Boundary || got.Entries[0].Boundary {
		t.Error("boundary should be on the first negative score")
	}
	if got.Entries[2].Fraction != 0.5 || got.Entries[2].LastName != "Cole" {
		t.Errorf("entry 2 = %+v", got.Entries[2])
	}
	if !strings.Contains(string(data), `"stateAbbreviation": "VT"`) {
		t.Error("score fields should be inlined")
	}
}

func TestRenderPage(t *testing.T) {
	s1 := testSession()
	s2 := congress.Session{
		SessionNo: 116, StartYear: 2019, EndYear: congress.Year(2020),
		SenateURL:    "https://example.org/senate-116",
		HouseURL:     "https://example.org/house-116",
		SenateScores: []congress.Score{{Number: 1, LastName: "Senator", Party: congress.Republican, Score: 1}},
		HouseScores:  []congress.Score{{Number: 1, LastName: "Representative", Party: congress.Democrat, Score: -1}},
	}
	out, err := RenderPage(congress.Dataset{s1, s2}, WithTitle("Test <Index>"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(out)

	if !strings.Contains(page, "<title>Test &lt;Index&gt;</title>") {
		t.Error("title not escaped")
	}
	i117 := strings.Index(page, "117th Congress (2021 - 2022)")
	i116 := strings.Index(page, "116th Congress (2019 - 2020)")
	if i117 < 0 || i116 < 0 || i117 > i116 {
		t.Error("sessions should appear in dataset order")
	}
	if !strings.Contains(page, `<a href="https://example.org/house-116">#</a>`) {
		t.Error("house link missing")
	}
	if strings.Count(page, "<svg") != 3 {
		t.Errorf("charts = %d, want 3", strings.Count(page, "<svg"))
	}
	iSen := strings.Index(page, "Senator")
	iRep := strings.Index(page, "Representative")
	if iSen < 0 || iRep < 0 || iSen > iRep {
		t.Error("senate chart should precede the house chart")
	}
}
