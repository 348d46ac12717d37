package coach

import (
	"encoding/csv"
	"encoding/json"
	"os"

	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
)

// LoadStore reads the diary CSV, metrics JSON and dialogues JSON into a
// MemoryStore. Loading is best-effort: a missing or malformed file logs a
// warning and contributes nothing, it never fails startup.
func LoadStore(diaryPath, metricsPath, dialoguesPath string) *MemoryStore {
	logger := logging.WithComponent("coach")

	diary, err := loadDiary(diaryPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", diaryPath).Msg("sleep diary unavailable, continuing without it")
	}

	metrics, err := loadMetrics(metricsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", metricsPath).Msg("sleep metrics unavailable, continuing without them")
	}

	dialogues, err := loadDialogues(dialoguesPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", dialoguesPath).Msg("coaching dialogues unavailable, continuing without them")
	}

	logger.Info().
		Int("diaryEntries", len(diary)).
		Int("metricEntries", len(metrics)).
		Int("dialogueExamples", len(dialogues)).
		Msg("coaching context loaded")

	return NewMemoryStore(diary, metrics, dialogues)
}

func loadDiary(path string) ([]DiaryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	dateIdx, entryIdx := -1, -1
	for i, name := range records[0] {
		switch name {
		case "Date":
			dateIdx = i
		case "Entry":
			entryIdx = i
		}
	}

	var entries []DiaryEntry
	for _, row := range records[1:] {
		var entry DiaryEntry
		if dateIdx >= 0 && dateIdx < len(row) {
			entry.Date = row[dateIdx]
		}
		if entryIdx >= 0 && entryIdx < len(row) {
			entry.Entry = row[entryIdx]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func loadMetrics(path string) ([]MetricEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var metrics []MetricEntry
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func loadDialogues(path string) ([]DialogueExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dialogues []DialogueExample
	if err := json.Unmarshal(data, &dialogues); err != nil {
		return nil, err
	}
	return dialogues, nil
}
