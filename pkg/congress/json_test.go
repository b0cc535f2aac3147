package congress

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `[
  {
    "startYear": 2023,
    "endYear": null,
    "sessionNo": 118,
    "houseScores": [],
    "senateScores": [
      {"number": 1, "firstName": "Susan", "lastName": "Collins", "stateAbbreviation": "ME", "partyAbbreviation": "R", "score": 2.5},
      {"number": 2, "firstName": "Joe", "lastName": "Manchin", "stateAbbreviation": "WV", "partyAbbreviation": "D", "score": -0.5}
    ],
    "houseUrl": "https://example.org/h",
    "senateUrl": "https://example.org/s"
  },
  {
    "startYear": 2011,
    "endYear": 2012,
    "sessionNo": 112,
    "senateScores": [
      {"number": 1, "firstName": "A", "lastName": "B", "stateAbbreviation": "XX", "partyAbbreviation": "D", "score": 0}
    ]
  }
]`

func TestReadJSON(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(ds) != 2 {
		t.Fatalf("len = %d, want 2", len(ds))
	}

	first := ds[0]
	if first.SessionNo != 118 || first.EndYear != nil {
		t.Errorf("first session = %d end=%v", first.SessionNo, first.EndYear)
	}
	house, ok := first.Scores(House)
	if !ok || len(house) != 0 {
		t.Errorf("house present=%v len=%d, want present and empty", ok, len(house))
	}
	senate, _ := first.Scores(Senate)
	if senate[1].LastName != "Manchin" || senate[1].Party != Democrat || senate[1].Score != -0.5 {
		t.Errorf("senate[1] = %+v", senate[1])
	}

	second := ds[1]
	if _, ok := second.Scores(House); ok {
		t.Error("house should be absent in 112th")
	}
	if second.EndYear == nil || *second.EndYear != 2012 {
		t.Errorf("endYear = %v", second.EndYear)
	}
}

func TestReadJSONRejectsNullChamber(t *testing.T) {
	in := `[{"startYear": 2021, "sessionNo": 117, "senateScores": null}]`
	if _, err := ReadJSON(strings.NewReader(in)); err == nil {
		t.Error("ReadJSON() should reject a null chamber list")
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"not": "an array"}`)); err == nil {
		t.Error("ReadJSON() should reject non-array input")
	}
}

func TestWriteJSONKeepsPresence(t *testing.T) {
	ds := Dataset{{SessionNo: 118, StartYear: 2023, HouseScores: []Score{}, SenateScores: nil}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, ds); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"houseScores": []`) {
		t.Errorf("empty house list should be written, got:\n%s", out)
	}
	if strings.Contains(out, "senateScores") {
		t.Errorf("absent senate list should be omitted, got:\n%s", out)
	}
	if !strings.Contains(out, `"endYear": null`) {
		t.Errorf("missing end year should be null, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "[\n  {") {
		t.Errorf("output should use two-space indentation, got:\n%s", out)
	}
}

func TestExportImportJSON(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "data", "sessions.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ExportJSON(path, ds); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(got) != len(ds) {
		t.Fatalf("len = %d, want %d", len(got), len(ds))
	}
	for i := range ds {
		if got[i].SessionNo != ds[i].SessionNo {
			t.Errorf("session[%d] = %d, want %d", i, got[i].SessionNo, ds[i].SessionNo)
		}
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON() should fail for a missing file")
	}
}
