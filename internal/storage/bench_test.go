package storage

import (
	"fmt"
	"testing"
	"time"
)

func benchCalendar(days int, today time.Time) Calendar {
	cal := make(Calendar, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, -i)
		e := Emotions[i%len(Emotions)]
		cal[d.Format(DateLayout)] = CalendarEntry{
			Emotion:   e,
			Note:      fmt.Sprintf("day %d", i),
			Color:     DefaultColor(e),
			Timestamp: d.Format(TimestampLayout),
		}
	}
	return cal
}

// BenchmarkStreak measures the streak walk over calendars of growing size.
func BenchmarkStreak(b *testing.B) {
	today := time.Date(2024, 6, 30, 12, 0, 0, 0, time.Local)
	for _, size := range []int{10, 365, 3650} {
		b.Run(fmt.Sprintf("days_%d", size), func(b *testing.B) {
			cal := benchCalendar(size, today)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Streak(cal, today)
			}
		})
	}
}

// BenchmarkPartitionLetters measures the mailbox split.
func BenchmarkPartitionLetters(b *testing.B) {
	today := time.Date(2024, 6, 30, 12, 0, 0, 0, time.Local)
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			letters := make([]Letter, size)
			for i := range letters {
				letters[i] = Letter{
					ID:           fmt.Sprintf("l_%d", i),
					DeliveryDate: today.AddDate(0, 0, i%60-30).Format(DateLayout),
				}
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				PartitionLetters(letters, today)
			}
		})
	}
}

// BenchmarkRecordEmotion measures a full load-mutate-save cycle on disk.
func BenchmarkRecordEmotion(b *testing.B) {
	store := createBenchStorage(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.RecordEmotion(EmotionCalm, "steady", ""); err != nil {
			b.Fatalf("RecordEmotion failed: %v", err)
		}
	}
}

// BenchmarkLoadCalendar measures calendar loading with varying sizes.
func BenchmarkLoadCalendar(b *testing.B) {
	for _, size := range []int{30, 365, 3650} {
		b.Run(fmt.Sprintf("days_%d", size), func(b *testing.B) {
			store := createBenchStorage(b)
			if err := store.SaveCalendar(benchCalendar(size, time.Now())); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				store.LoadCalendar()
			}
		})
	}
}

// BenchmarkAppendMood measures mood log appends.
func BenchmarkAppendMood(b *testing.B) {
	store := createBenchStorage(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.AppendMood(fmt.Sprintf("note %d", i)); err != nil {
			b.Fatalf("AppendMood failed: %v", err)
		}
	}
}

// createBenchStorage creates a storage instance for benchmarks
func createBenchStorage(b *testing.B) *Storage {
	b.Helper()
	store, err := New(b.TempDir())
	if err != nil {
		b.Fatalf("failed to create bench storage: %v", err)
	}
	return store
}
