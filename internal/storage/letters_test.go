package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewLetter(t *testing.T) {
	now := time.Date(2024, 1, 1, 20, 15, 0, 0, time.Local)

	tests := []struct {
		label string
		want  string
	}{
		{"1 week", "2024-01-08"},
		{"1 month", "2024-01-31"},
		{"3 months", "2024-03-31"},
		{"1 year", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			l, err := NewLetter("  dear me  ", tt.label, now)
			if err != nil {
				t.Fatalf("NewLetter() error = %v", err)
			}
			if l.DeliveryDate != tt.want {
				t.Errorf("DeliveryDate = %s, want %s", l.DeliveryDate, tt.want)
			}
			if l.WriteDate != "2024-01-01" || l.WriteTime != "2024-01-01 20:15:00" {
				t.Errorf("WriteDate/WriteTime = %s / %s", l.WriteDate, l.WriteTime)
			}
			if l.Content != "dear me" || l.Title != "" {
				t.Errorf("Content/Title = %q / %q", l.Content, l.Title)
			}
			if l.IsRead || l.ReadDate != nil {
				t.Error("new letter is already read")
			}
			id, err := uuid.Parse(l.ID)
			if err != nil || id.Version() != 4 {
				t.Errorf("ID %q is not a v4 uuid", l.ID)
			}
			if l.DeliveryDate < l.WriteDate {
				t.Error("delivery before write")
			}
		})
	}
}

func TestNewLetter_UniqueIDs(t *testing.T) {
	a, _ := NewLetter("a", "1 week", testNow)
	b, _ := NewLetter("a", "1 week", testNow)
	if a.ID == b.ID {
		t.Error("ids collide")
	}
}

func TestNewLetter_Rejects(t *testing.T) {
	if _, err := NewLetter("", "1 week", testNow); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("empty content error = %v", err)
	}
	if _, err := NewLetter(" \n\t", "1 week", testNow); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("whitespace content error = %v", err)
	}
	if _, err := NewLetter("hi", "2 weeks", testNow); !errors.Is(err, ErrUnknownOffset) {
		t.Errorf("unknown label error = %v", err)
	}
}

func TestPartitionLetters_BoundaryInclusive(t *testing.T) {
	l, err := NewLetter("hello", "1 week", day("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if l.DeliveryDate != "2024-01-08" {
		t.Fatalf("DeliveryDate = %s", l.DeliveryDate)
	}

	deliverable, waiting := PartitionLetters([]Letter{l}, day("2024-01-08"))
	if len(deliverable) != 1 || len(waiting) != 0 {
		t.Errorf("on delivery day: %d deliverable, %d waiting", len(deliverable), len(waiting))
	}

	deliverable, waiting = PartitionLetters([]Letter{l}, day("2024-01-07"))
	if len(deliverable) != 0 || len(waiting) != 1 {
		t.Errorf("day before: %d deliverable, %d waiting", len(deliverable), len(waiting))
	}
}

func TestPartitionLetters_Order(t *testing.T) {
	letters := []Letter{
		{ID: "w2", DeliveryDate: "2024-03-01"},
		{ID: "d-old", DeliveryDate: "2023-12-01"},
		{ID: "d-new-a", DeliveryDate: "2024-01-02"},
		{ID: "w1", DeliveryDate: "2024-02-01"},
		{ID: "d-new-b", DeliveryDate: "2024-01-02"},
		{ID: "bad", DeliveryDate: "someday"},
	}

	deliverable, waiting := PartitionLetters(letters, day("2024-01-03"))

	wantD := []string{"d-new-a", "d-new-b", "d-old"}
	wantW := []string{"w2", "w1", "bad"}
	if len(deliverable) != len(wantD) || len(waiting) != len(wantW) {
		t.Fatalf("got %d/%d, want %d/%d", len(deliverable), len(waiting), len(wantD), len(wantW))
	}
	for i, id := range wantD {
		if deliverable[i].ID != id {
			t.Errorf("deliverable[%d] = %s, want %s", i, deliverable[i].ID, id)
		}
	}
	for i, id := range wantW {
		if waiting[i].ID != id {
			t.Errorf("waiting[%d] = %s, want %s", i, waiting[i].ID, id)
		}
	}
}

func TestMarkRead_IdempotentOverwritesDate(t *testing.T) {
	letters := []Letter{{ID: "x", DeliveryDate: "2024-01-01"}, {ID: "y", DeliveryDate: "2024-01-01"}}
	first := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)
	second := time.Date(2024, 1, 6, 9, 0, 0, 0, time.Local)

	if !MarkRead(letters, "x", first) {
		t.Fatal("MarkRead() = false")
	}
	if !MarkRead(letters, "x", second) {
		t.Fatal("second MarkRead() = false")
	}
	if !letters[0].IsRead {
		t.Error("IsRead = false")
	}
	if letters[0].ReadDate == nil || *letters[0].ReadDate != "2024-01-06 09:00:00" {
		t.Errorf("ReadDate = %v, want latest call", letters[0].ReadDate)
	}
	if letters[1].IsRead {
		t.Error("other letter touched")
	}
}

func TestMarkRead_UnknownID(t *testing.T) {
	letters := []Letter{{ID: "x"}}
	if MarkRead(letters, "nope", testNow) {
		t.Error("MarkRead() = true for unknown id")
	}
	if letters[0].IsRead {
		t.Error("letter modified")
	}
	if MarkRead(nil, "x", testNow) {
		t.Error("MarkRead(nil) = true")
	}
}

func TestCountNew(t *testing.T) {
	read := "2024-01-02 10:00:00"
	letters := []Letter{
		{ID: "a", DeliveryDate: "2024-01-01"},
		{ID: "b", DeliveryDate: "2024-01-03"},
		{ID: "c", DeliveryDate: "2024-01-01", IsRead: true, ReadDate: &read},
		{ID: "d", DeliveryDate: "2024-01-04"},
	}
	if got := CountNew(letters, day("2024-01-03")); got != 2 {
		t.Errorf("CountNew() = %d, want 2", got)
	}
	if got := CountNew(nil, day("2024-01-03")); got != 0 {
		t.Errorf("CountNew(nil) = %d", got)
	}
}

func TestDaysUntilDelivery(t *testing.T) {
	l := Letter{DeliveryDate: "2024-01-10"}
	if got := l.DaysUntilDelivery(day("2024-01-03")); got != 7 {
		t.Errorf("DaysUntilDelivery() = %d, want 7", got)
	}
	if got := l.DaysUntilDelivery(day("2024-01-12")); got != -2 {
		t.Errorf("DaysUntilDelivery() = %d, want -2", got)
	}
}

func TestWriteLetter(t *testing.T) {
	store, _ := createMemStorage(t)

	l, err := store.WriteLetter("keep going", "1 week")
	if err != nil {
		t.Fatalf("WriteLetter() error = %v", err)
	}
	if l.DeliveryDate != "2024-01-10" {
		t.Errorf("DeliveryDate = %s", l.DeliveryDate)
	}

	letters := store.LoadLetters().Letters
	if len(letters) != 1 || letters[0].ID != l.ID {
		t.Fatalf("stored letters = %+v", letters)
	}
	if got := store.NewLetterCount(); got != 0 {
		t.Errorf("NewLetterCount() = %d before delivery", got)
	}

	store.SetNowFunc(func() time.Time { return day("2024-01-10") })
	if got := store.NewLetterCount(); got != 1 {
		t.Errorf("NewLetterCount() = %d on delivery day", got)
	}
	deliverable, waiting := store.Mailbox()
	if len(deliverable) != 1 || len(waiting) != 0 {
		t.Errorf("Mailbox() = %d/%d", len(deliverable), len(waiting))
	}
}

func TestWriteLetter_EmptyLeavesStoreUnchanged(t *testing.T) {
	store, mem := createMemStorage(t)
	if _, err := store.WriteLetter("first", "1 month"); err != nil {
		t.Fatal(err)
	}
	before, _ := mem.Read(LettersFile)

	if _, err := store.WriteLetter("   ", "1 week"); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("WriteLetter(empty) error = %v", err)
	}
	if _, err := store.WriteLetter("text", "forever"); !errors.Is(err, ErrUnknownOffset) {
		t.Fatalf("WriteLetter(bad label) error = %v", err)
	}

	after, _ := mem.Read(LettersFile)
	if string(before) != string(after) {
		t.Errorf("store changed:\nbefore %s\nafter %s", before, after)
	}
}

func TestMarkLetterRead(t *testing.T) {
	store, _ := createMemStorage(t)
	l, err := store.WriteLetter("hi", "1 week")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.MarkLetterRead("missing"); !errors.Is(err, ErrLetterNotFound) {
		t.Errorf("MarkLetterRead(missing) error = %v", err)
	}

	if err := store.MarkLetterRead(l.ID); err != nil {
		t.Fatalf("MarkLetterRead() error = %v", err)
	}
	got, ok := store.GetLetter(l.ID)
	if !ok || !got.IsRead || got.ReadDate == nil || *got.ReadDate != "2024-01-03 09:30:00" {
		t.Errorf("letter after read = %+v", got)
	}
}

func TestGetLetter_Prefix(t *testing.T) {
	store, _ := createMemStorage(t)
	if err := store.SaveLetters(LetterStore{Letters: []Letter{
		{ID: "abc-1"}, {ID: "abd-2"},
	}}); err != nil {
		t.Fatal(err)
	}

	if l, ok := store.GetLetter("abc"); !ok || l.ID != "abc-1" {
		t.Errorf("GetLetter(abc) = %+v, %v", l, ok)
	}
	if _, ok := store.GetLetter("ab"); ok {
		t.Error("ambiguous prefix matched")
	}
	if _, ok := store.GetLetter("zzz"); ok {
		t.Error("unknown prefix matched")
	}
}

func TestMergeLetters(t *testing.T) {
	store, _ := createMemStorage(t)
	if err := store.SaveLetters(LetterStore{Letters: []Letter{{ID: "a"}}}); err != nil {
		t.Fatal(err)
	}

	n, err := store.MergeLetters([]Letter{{ID: "a"}, {ID: "b"}, {ID: "b"}, {ID: ""}})
	if err != nil {
		t.Fatalf("MergeLetters() error = %v", err)
	}
	if n != 1 {
		t.Errorf("MergeLetters() = %d, want 1", n)
	}
	if got := len(store.LoadLetters().Letters); got != 2 {
		t.Errorf("stored %d letters, want 2", got)
	}
}
