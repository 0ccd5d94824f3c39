package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeliveryOffset is a symbolic delay between writing and receiving a letter.
type DeliveryOffset struct {
	Label string
	Days  int
}

// DeliveryOffsets lists the selectable offsets, shortest first.
var DeliveryOffsets = []DeliveryOffset{
	{Label: "1 week", Days: 7},
	{Label: "1 month", Days: 30},
	{Label: "3 months", Days: 90},
	{Label: "1 year", Days: 365},
}

// OffsetDays returns the day count for label.
func OffsetDays(label string) (int, bool) {
	for _, o := range DeliveryOffsets {
		if o.Label == label {
			return o.Days, true
		}
	}
	return 0, false
}

// DeliveryDate returns the YYYY-MM-DD date offset days after now.
func DeliveryDate(now time.Time, days int) string {
	return dayOf(now).AddDate(0, 0, days).Format(DateLayout)
}

// NewLetter builds an unread letter written at now and delivered after the
// offset named by label.
func NewLetter(content, label string, now time.Time) (Letter, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Letter{}, fmt.Errorf("letter: %w", ErrEmptyContent)
	}
	days, ok := OffsetDays(label)
	if !ok {
		return Letter{}, fmt.Errorf("%w: %q", ErrUnknownOffset, label)
	}

	return Letter{
		ID:           uuid.NewString(),
		Title:        "",
		Content:      content,
		WriteDate:    now.Format(DateLayout),
		DeliveryDate: DeliveryDate(now, days),
		IsRead:       false,
		ReadDate:     nil,
		WriteTime:    now.Format(TimestampLayout),
	}, nil
}

// Deliverable reports whether the letter's delivery date is today or
// earlier. A malformed delivery date is never deliverable.
func (l Letter) Deliverable(today time.Time) bool {
	d, err := time.Parse(DateLayout, l.DeliveryDate)
	if err != nil {
		return false
	}
	return !d.After(dayOf(today))
}

// DaysUntilDelivery is negative once the letter has arrived.
func (l Letter) DaysUntilDelivery(today time.Time) int {
	d, err := time.Parse(DateLayout, l.DeliveryDate)
	if err != nil {
		return 0
	}
	return int(d.Sub(dayOf(today)).Hours() / 24)
}

// PartitionLetters splits letters into those that have arrived, newest
// delivery first, and those still waiting, in stored order.
func PartitionLetters(letters []Letter, today time.Time) (deliverable, waiting []Letter) {
	for _, l := range letters {
		if l.Deliverable(today) {
			deliverable = append(deliverable, l)
		} else {
			waiting = append(waiting, l)
		}
	}
	sort.SliceStable(deliverable, func(i, j int) bool {
		return deliverable[i].DeliveryDate > deliverable[j].DeliveryDate
	})
	return deliverable, waiting
}

// MarkRead marks the letter with id as read at now. read_date is overwritten
// on every call. It reports whether the id was found.
func MarkRead(letters []Letter, id string, now time.Time) bool {
	for i := range letters {
		if letters[i].ID == id {
			ts := now.Format(TimestampLayout)
			letters[i].IsRead = true
			letters[i].ReadDate = &ts
			return true
		}
	}
	return false
}

// CountNew counts letters that have arrived and are still unread.
func CountNew(letters []Letter, today time.Time) int {
	n := 0
	for _, l := range letters {
		if !l.IsRead && l.Deliverable(today) {
			n++
		}
	}
	return n
}

func (s *Storage) loadLetters() LetterStore {
	store := loadJSON(s, LettersFile, func() LetterStore { return LetterStore{Letters: []Letter{}} })
	if store.Letters == nil {
		store.Letters = []Letter{}
	}
	return store
}

// LoadLetters reads all letters.
func (s *Storage) LoadLetters() LetterStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLetters()
}

// SaveLetters replaces the letter store.
func (s *Storage) SaveLetters(store LetterStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(LettersFile, store)
}

// WriteLetter creates and persists a letter. Invalid input leaves the store
// untouched.
func (s *Storage) WriteLetter(content, label string) (Letter, error) {
	letter, err := NewLetter(content, label, s.Now())
	if err != nil {
		return Letter{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.loadLetters()
	store.Letters = append(store.Letters, letter)
	if err := s.writeJSON(LettersFile, store); err != nil {
		return Letter{}, err
	}

	s.notifySaveWithContext(SaveContext{
		Filename:  LettersFile,
		Operation: "write",
		ItemType:  "letter",
		ItemName:  label,
	})
	return letter, nil
}

// MarkLetterRead marks a letter read and persists it.
func (s *Storage) MarkLetterRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.loadLetters()
	if !MarkRead(store.Letters, id, s.Now()) {
		return fmt.Errorf("%w: %s", ErrLetterNotFound, id)
	}
	if err := s.writeJSON(LettersFile, store); err != nil {
		return err
	}

	s.notifySaveWithContext(SaveContext{
		Filename:  LettersFile,
		Operation: "read",
		ItemType:  "letter",
	})
	return nil
}

// GetLetter looks a letter up by id, or by a unique id prefix.
func (s *Storage) GetLetter(id string) (Letter, bool) {
	var match *Letter
	store := s.LoadLetters()
	for i := range store.Letters {
		l := &store.Letters[i]
		if l.ID == id {
			return *l, true
		}
		if id != "" && strings.HasPrefix(l.ID, id) {
			if match != nil {
				return Letter{}, false
			}
			match = l
		}
	}
	if match == nil {
		return Letter{}, false
	}
	return *match, true
}

// Mailbox partitions the stored letters against the storage clock.
func (s *Storage) Mailbox() (deliverable, waiting []Letter) {
	return PartitionLetters(s.LoadLetters().Letters, s.Now())
}

// NewLetterCount counts arrived, unread letters.
func (s *Storage) NewLetterCount() int {
	return CountNew(s.LoadLetters().Letters, s.Now())
}

// MergeLetters appends letters whose id is not stored yet and returns how
// many were added.
func (s *Storage) MergeLetters(in []Letter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.loadLetters()
	seen := make(map[string]bool, len(store.Letters))
	for _, l := range store.Letters {
		seen[l.ID] = true
	}
	n := 0
	for _, l := range in {
		if l.ID == "" || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		store.Letters = append(store.Letters, l)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.writeJSON(LettersFile, store); err != nil {
		return 0, err
	}

	s.notifySaveWithContext(SaveContext{
		Filename:  LettersFile,
		Operation: "import",
		ItemType:  "letter",
		ItemName:  fmt.Sprintf("%d letters", n),
	})
	return n, nil
}
