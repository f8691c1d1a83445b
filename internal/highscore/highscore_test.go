package highscore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func boardAt(t *testing.T) *Board {
	t.Helper()
	b, err := Load(filepath.Join(t.TempDir(), "highscores.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func TestEmptyBoardAcceptsAnything(t *testing.T) {
	b := boardAt(t)
	if !b.IsHighScore(9999) {
		t.Error("empty board rejected a score")
	}
	rank, err := b.Add("abc", 300)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}
}

func TestBoardKeepsThreeFastest(t *testing.T) {
	b := boardAt(t)
	for _, e := range []Entry{{"AAA", 300}, {"BBB", 120}, {"CCC", 200}, {"DDD", 250}} {
		if _, err := b.Add(e.Initials, e.Seconds); err != nil {
			t.Fatalf("Add(%v): %v", e, err)
		}
	}
	want := []Entry{{"BBB", 120}, {"CCC", 200}, {"DDD", 250}}
	if got := b.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	if b.IsHighScore(250) {
		t.Error("a tie with the slowest entry must not qualify")
	}
	if !b.IsHighScore(249) {
		t.Error("a faster run must qualify")
	}
}

func TestEqualTimesRankBehindExisting(t *testing.T) {
	// A run matching an existing time, even with the same initials, ranks
	// after it rather than inheriting its rank.
	b := boardAt(t)
	if _, err := b.Add("AAA", 200); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rank, err := b.Add("AAA", 200)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rank != 2 {
		t.Errorf("rank = %d, want 2 behind the earlier equal run", rank)
	}
	rank, err = b.Add("BBB", 150)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank = %d, want 1 for the faster run", rank)
	}
}

func TestSlowRunNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.txt")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, e := range []Entry{{"AAA", 100}, {"BBB", 110}, {"CCC", 120}} {
		if _, err := b.Add(e.Initials, e.Seconds); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	rank, err := b.Add("ZZZ", 500)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rank != 0 {
		t.Errorf("rank = %d, want 0 for a run off the board", rank)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for _, e := range reloaded.Entries() {
		if e.Initials == "ZZZ" {
			t.Error("slow run leaked into the file")
		}
	}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.txt")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := b.Add("AAA", 120); err != nil {
		t.Fatalf("Add: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) != "AAA,120\n" {
		t.Errorf("file = %q, want %q", raw, "AAA,120\n")
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Entries(); len(got) != 1 || got[0] != (Entry{"AAA", 120}) {
		t.Errorf("entries = %v", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.txt")
	if err := os.WriteFile(path, []byte("AAA;120\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a malformed line")
	}

	if err := os.WriteFile(path, []byte("AAA,fast\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a non-numeric time")
	}
}

func TestSanitizeInitials(t *testing.T) {
	tests := []struct{ in, want string }{
		{"abc", "ABC"},
		{"ab", "ABA"},
		{"", "AAA"},
		{"long", "LON"},
		{" jd ", "JDA"},
	}
	for _, tt := range tests {
		if got := sanitizeInitials(tt.in); got != tt.want {
			t.Errorf("sanitizeInitials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"}, {59, "00:59"}, {60, "01:00"}, {125, "02:05"}, {-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSecondsOf(t *testing.T) {
	if got := SecondsOf(2*time.Minute + 5*time.Second + 900*time.Millisecond); got != 125 {
		t.Errorf("SecondsOf = %d, want 125", got)
	}
}
