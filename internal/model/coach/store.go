package coach

import "strings"

// Store exposes read-only coaching context lookups.
type Store interface {
	LatestDiary() (DiaryEntry, bool)
	LatestMetric() (MetricEntry, bool)
	FindFallback(userText string) (string, bool)
	Snapshot() Snapshot
}

// MemoryStore implements Store over slices populated once at construction.
type MemoryStore struct {
	diary     []DiaryEntry
	metrics   []MetricEntry
	dialogues []DialogueExample
}

// NewMemoryStore returns a MemoryStore holding copies of the supplied data.
func NewMemoryStore(diary []DiaryEntry, metrics []MetricEntry, dialogues []DialogueExample) *MemoryStore {
	return &MemoryStore{
		diary:     append([]DiaryEntry(nil), diary...),
		metrics:   append([]MetricEntry(nil), metrics...),
		dialogues: append([]DialogueExample(nil), dialogues...),
	}
}

// LatestDiary returns the last diary entry in load order.
func (s *MemoryStore) LatestDiary() (DiaryEntry, bool) {
	if len(s.diary) == 0 {
		return DiaryEntry{}, false
	}
	return s.diary[len(s.diary)-1], true
}

// LatestMetric returns the last metric entry in load order.
func (s *MemoryStore) LatestMetric() (MetricEntry, bool) {
	if len(s.metrics) == 0 {
		return MetricEntry{}, false
	}
	return s.metrics[len(s.metrics)-1], true
}

// FindFallback returns the reply of the first dialogue example whose pattern
// is a case-insensitive substring of userText.
func (s *MemoryStore) FindFallback(userText string) (string, bool) {
	lowered := strings.ToLower(userText)
	for _, ex := range s.dialogues {
		if ex.UserPattern == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(ex.UserPattern)) {
			return ex.CoachReply, true
		}
	}
	return "", false
}

// Snapshot computes the latest-entry context for one request.
func (s *MemoryStore) Snapshot() Snapshot {
	var snap Snapshot
	if entry, ok := s.LatestDiary(); ok {
		snap.Diary = &entry
	}
	if metric, ok := s.LatestMetric(); ok {
		snap.Metric = &metric
	}
	return snap
}
