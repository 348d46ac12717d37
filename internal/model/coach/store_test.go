package coach

import (
	"encoding/json"
	"testing"
)

func TestLatestDiaryReturnsLastEntry(t *testing.T) {
	store := NewMemoryStore([]DiaryEntry{
		{Date: "2024-01-01", Entry: "slept poorly"},
		{Date: "2024-01-02", Entry: "slept well"},
	}, nil, nil)

	entry, ok := store.LatestDiary()
	if !ok {
		t.Fatal("expected diary entry")
	}
	if entry.Date != "2024-01-02" || entry.Entry != "slept well" {
		t.Fatalf("unexpected latest entry: %+v", entry)
	}
}

func TestLatestLookupsEmptyStore(t *testing.T) {
	store := NewMemoryStore(nil, nil, nil)

	if _, ok := store.LatestDiary(); ok {
		t.Fatal("expected no diary entry")
	}
	if _, ok := store.LatestMetric(); ok {
		t.Fatal("expected no metric entry")
	}
	if !store.Snapshot().Empty() {
		t.Fatal("expected empty snapshot")
	}
}

func TestFindFallbackCaseInsensitive(t *testing.T) {
	store := NewMemoryStore(nil, nil, []DialogueExample{
		{UserPattern: "Rough Night", CoachReply: "Let's talk about what happened."},
	})

	reply, ok := store.FindFallback("I had a ROUGH night yesterday")
	if !ok {
		t.Fatal("expected a fallback match")
	}
	if reply != "Let's talk about what happened." {
		t.Fatalf("unexpected reply: %s", reply)
	}
}

func TestFindFallbackFirstMatchWins(t *testing.T) {
	store := NewMemoryStore(nil, nil, []DialogueExample{
		{UserPattern: "night", CoachReply: "first"},
		{UserPattern: "rough night", CoachReply: "second"},
	})

	reply, ok := store.FindFallback("a rough night")
	if !ok {
		t.Fatal("expected a fallback match")
	}
	if reply != "first" {
		t.Fatalf("expected earliest example to win, got %s", reply)
	}
}

func TestFindFallbackSkipsEmptyPatterns(t *testing.T) {
	store := NewMemoryStore(nil, nil, []DialogueExample{
		{UserPattern: "", CoachReply: "never"},
		{UserPattern: "tired", CoachReply: "rest up"},
	})

	reply, ok := store.FindFallback("so tired today")
	if !ok || reply != "rest up" {
		t.Fatalf("unexpected fallback: %q ok=%v", reply, ok)
	}
}

func TestFindFallbackNoMatch(t *testing.T) {
	store := NewMemoryStore(nil, nil, []DialogueExample{
		{UserPattern: "insomnia", CoachReply: "reply"},
	})

	if _, ok := store.FindFallback("completely unrelated"); ok {
		t.Fatal("expected no match")
	}
}

func TestSnapshotFormat(t *testing.T) {
	store := NewMemoryStore(
		[]DiaryEntry{{Date: "2024-01-01", Entry: "slept poorly"}},
		[]MetricEntry{{Date: "2024-01-01", SleepScore: 62, Hours: 5.5}},
		nil,
	)

	got := store.Snapshot().Format()
	want := "Last Diary (2024-01-01): slept poorly\nWearable Data (2024-01-01): Sleep Score 62, Hours Slept 5.5"
	if got != want {
		t.Fatalf("unexpected snapshot:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestSnapshotFormatDiaryOnly(t *testing.T) {
	store := NewMemoryStore([]DiaryEntry{{Date: "2024-02-02", Entry: "late coffee"}}, nil, nil)

	got := store.Snapshot().Format()
	if got != "Last Diary (2024-02-02): late coffee" {
		t.Fatalf("unexpected snapshot: %s", got)
	}
}

func TestMetricEntryHoursSourcePrecedence(t *testing.T) {
	var fromHours MetricEntry
	if err := json.Unmarshal([]byte(`{"date":"2024-01-01","sleep_score":70,"hours":6.5,"sleep_duration":8}`), &fromHours); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if fromHours.Hours != 6.5 {
		t.Fatalf("expected hours field to win, got %v", fromHours.Hours)
	}

	var fromDuration MetricEntry
	if err := json.Unmarshal([]byte(`{"date":"2024-01-01","sleep_score":70,"sleep_duration":8}`), &fromDuration); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if fromDuration.Hours != 8 {
		t.Fatalf("expected sleep_duration fallback, got %v", fromDuration.Hours)
	}
}
