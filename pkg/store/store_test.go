package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

func sampleDataset() congress.Dataset {
	return congress.Dataset{
		{
			SessionNo: 118, StartYear: 2023,
			SenateScores: []congress.Score{
				{Number: 1, FirstName: "Susan", LastName: "Collins", State: "ME", Party: congress.Republican, Score: 2.5},
				{Number: 2, FirstName: "Joe", LastName: "Manchin", State: "WV", Party: congress.Democrat, Score: -0.5},
			},
			HouseScores: []congress.Score{},
			SenateURL:   "https://example.org/s",
			HouseURL:    "https://example.org/h",
		},
		{
			SessionNo: 112, StartYear: 2011, EndYear: congress.Year(2012),
			SenateScores: []congress.Score{
				{Number: 1, FirstName: "Olympia", LastName: "Snowe", State: "ME", Party: congress.Republican, Score: 1.9},
			},
			SenateURL: "https://example.org/hist",
		},
	}
}

func assertSameDataset(t *testing.T, got, want congress.Dataset) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.SessionNo != w.SessionNo || g.StartYear != w.StartYear {
			t.Errorf("session[%d] = %d/%d, want %d/%d", i, g.SessionNo, g.StartYear, w.SessionNo, w.StartYear)
		}
		if (g.EndYear == nil) != (w.EndYear == nil) || (g.EndYear != nil && *g.EndYear != *w.EndYear) {
			t.Errorf("session[%d] EndYear = %v, want %v", i, g.EndYear, w.EndYear)
		}
		if g.SenateURL != w.SenateURL || g.HouseURL != w.HouseURL {
			t.Errorf("session[%d] urls = %q %q", i, g.SenateURL, g.HouseURL)
		}
		for _, c := range congress.Chambers {
			gs, gok := g.Scores(c)
			ws, wok := w.Scores(c)
			if gok != wok {
				t.Errorf("session[%d] %s present = %v, want %v", i, c, gok, wok)
				continue
			}
			if len(gs) != len(ws) {
				t.Errorf("session[%d] %s len = %d, want %d", i, c, len(gs), len(ws))
				continue
			}
			for j := range ws {
				if gs[j] != ws[j] {
					t.Errorf("session[%d] %s[%d] = %+v, want %+v", i, c, j, gs[j], ws[j])
				}
			}
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "data", "sessions.json"))

	if err := s.Save(ctx, sampleDataset(), Meta{RunID: "r1"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertSameDataset(t, got, sampleDataset())
}

func TestFileStoreMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := s.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "bipartisan.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	defer s.Close()

	meta := Meta{RunID: "run-1", ScrapedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Source: "test", Sessions: 2}
	if err := s.Save(ctx, sampleDataset(), meta); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertSameDataset(t, got, sampleDataset())

	// a second save replaces rather than appends
	if err := s.Save(ctx, sampleDataset()[:1], Meta{}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Load(ctx)
	if len(got) != 1 {
		t.Errorf("len after replace = %d, want 1", len(got))
	}

	run, err := s.LastRun(ctx)
	if err != nil || run == nil {
		t.Fatalf("LastRun() = %v, %v", run, err)
	}
	if run.RunID != "run-1" || run.Sessions != 2 {
		t.Errorf("LastRun() = %+v", run)
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ds, err := s.Load(context.Background())
	if err != nil || len(ds) != 0 {
		t.Errorf("Load() = %v, %v; want empty", ds, err)
	}
	if run, err := s.LastRun(context.Background()); run != nil || err != nil {
		t.Errorf("LastRun() = %v, %v; want nil, nil", run, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		uri     string
		wantErr errors.Code
		check   func(Store) bool
	}{
		{uri: filepath.Join(dir, "a.json"), check: func(s Store) bool { _, ok := s.(*FileStore); return ok }},
		{uri: "file://" + filepath.Join(dir, "b.json"), check: func(s Store) bool {
			fs, ok := s.(*FileStore)
			return ok && fs.Path() == filepath.Join(dir, "b.json")
		}},
		{uri: "sqlite://" + filepath.Join(dir, "c.db"), check: func(s Store) bool { _, ok := s.(*SQLiteStore); return ok }},
		{uri: "", wantErr: errors.ErrCodeInvalidConfig},
		{uri: "s3://bucket/key", wantErr: errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			s, err := Open(ctx, tt.uri)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer s.Close()
			if !tt.check(s) {
				t.Errorf("Open(%q) = %T", tt.uri, s)
			}
		})
	}
}

func TestMongoDatabase(t *testing.T) {
	tests := map[string]string{
		"mongodb://localhost:27017":               DefaultMongoDatabase,
		"mongodb://localhost:27017/":              DefaultMongoDatabase,
		"mongodb://localhost/scores":              "scores",
		"mongodb://u:p@host/scores?replicaSet=rs": "scores",
	}
	for uri, want := range tests {
		if got := mongoDatabase(uri); got != want {
			t.Errorf("mongoDatabase(%q) = %q, want %q", uri, got, want)
		}
	}
}
