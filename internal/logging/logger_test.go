package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/localaihub/hub-service/internal/models"
)

func testRecord(id int64) *models.InteractionRecord {
	return &models.InteractionRecord{
		Timestamp:        time.Now().UTC(),
		TraceID:          fmt.Sprintf("trace-%d", id),
		UserInput:        "hello",
		AIResponse:       "hi",
		Model:            "llama2",
		TimeTakenSeconds: 0.5,
		RequestID:        id,
	}
}

func TestAppendCreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ai_hub_log.jsonl")
	l := New(path)

	if err := l.Append(testRecord(1)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Log file not created: %v", err)
	}
}

func TestAppendWritesOneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	l := New(path)

	for i := int64(1); i <= 3; i++ {
		if err := l.Append(testRecord(i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var ids []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec models.InteractionRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("Line is not valid JSON: %v", err)
		}
		ids = append(ids, rec.RequestID)
	}

	if len(ids) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(ids))
	}
	for i, id := range ids {
		if id != int64(i+1) {
			t.Errorf("Line %d has request id %d", i, id)
		}
	}
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	l := New(path)

	for i := int64(1); i <= 5; i++ {
		if err := l.Append(testRecord(i)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].RequestID != 5 || records[1].RequestID != 4 {
		t.Errorf("Expected ids [5 4], got [%d %d]", records[0].RequestID, records[1].RequestID)
	}
}

func TestRecentMissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope.jsonl"))

	records, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent on missing file should not fail: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	l := New(path)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := l.Append(testRecord(id)); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}(int64(i))
	}
	wg.Wait()

	records, err := l.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != n {
		t.Fatalf("Expected %d parseable records, got %d", n, len(records))
	}
}
