// Package coach holds the immutable coaching context loaded once at startup:
// sleep diary entries, wearable metrics and example dialogues. The store is
// read-only after construction and safe for concurrent use by any number of
// sessions.
package coach

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DiaryEntry is a single dated sleep diary note.
type DiaryEntry struct {
	Date  string `json:"date"`
	Entry string `json:"entry"`
}

// MetricEntry is one day of wearable sleep data.
type MetricEntry struct {
	Date       string  `json:"date"`
	SleepScore float64 `json:"sleep_score"`
	Hours      float64 `json:"hours"`
}

// UnmarshalJSON accepts the hours value from either "hours" or
// "sleep_duration"; "hours" wins when both are present.
func (m *MetricEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date          string   `json:"date"`
		SleepScore    float64  `json:"sleep_score"`
		Hours         *float64 `json:"hours"`
		SleepDuration *float64 `json:"sleep_duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Date = raw.Date
	m.SleepScore = raw.SleepScore
	switch {
	case raw.Hours != nil:
		m.Hours = *raw.Hours
	case raw.SleepDuration != nil:
		m.Hours = *raw.SleepDuration
	}
	return nil
}

// DialogueExample pairs a user utterance pattern with a canned coach reply.
// Examples are consulted only when the generation model is unavailable.
type DialogueExample struct {
	UserPattern string `json:"user"`
	CoachReply  string `json:"coach"`
}

// Snapshot is the latest diary entry and latest metric entry, computed per
// request and formatted into prompt context.
type Snapshot struct {
	Diary  *DiaryEntry
	Metric *MetricEntry
}

// Empty reports whether the snapshot carries no context at all.
func (s Snapshot) Empty() bool {
	return s.Diary == nil && s.Metric == nil
}

// Format renders the snapshot as prompt context lines. Only lines whose
// source data is present are included.
func (s Snapshot) Format() string {
	var lines []string
	if s.Diary != nil {
		lines = append(lines, "Last Diary ("+s.Diary.Date+"): "+s.Diary.Entry)
	}
	if s.Metric != nil {
		lines = append(lines, "Wearable Data ("+s.Metric.Date+"): Sleep Score "+
			formatNumber(s.Metric.SleepScore)+", Hours Slept "+formatNumber(s.Metric.Hours))
	}
	return strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
