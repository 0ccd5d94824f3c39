package ui

import (
	"strings"
	"testing"

	"compass/internal/storage"
)

// seedLetters stores one arrived letter, one read letter and one waiting
// letter relative to fixedNow.
func seedLetters(t *testing.T, store *storage.Storage) {
	t.Helper()
	err := store.SaveLetters(storage.LetterStore{Letters: []storage.Letter{
		{ID: "old", Title: "A letter to future me", Content: "hello from winter", WriteDate: "2024-01-01", DeliveryDate: "2024-02-01", IsRead: true},
		{ID: "new", Title: "A letter to future me", Content: "hello from march", WriteDate: "2024-03-01", DeliveryDate: "2024-03-08"},
		{ID: "later", Title: "A letter to future me", Content: "not yet", WriteDate: "2024-03-10", DeliveryDate: "2024-03-20"},
	}})
	if err != nil {
		t.Fatalf("SaveLetters: %v", err)
	}
}

func TestLetters_Mailbox(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	seedLetters(t, store)
	app := createTestApp(t, store, 120)
	runCmd(app, app.Init())

	press(app, "4")
	view := app.View()
	for _, want := range []string{
		"MAILBOX",
		"New letters: 1",
		"Waiting: 1",
		"arrives in 5 days",
		"🆕 New - from you on 2024.03.01",
		"✅ Read - from you on 2024.01.01",
		"hello from march",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("mailbox should contain %q", want)
		}
	}
	if strings.Contains(view, "not yet") {
		t.Error("a waiting letter must stay sealed")
	}
}

func TestLetters_MarkRead(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	seedLetters(t, store)
	app := createTestApp(t, store, 120)
	runCmd(app, app.Init())

	press(app, "4", "m")

	l, ok := store.GetLetter("new")
	if !ok || !l.IsRead || l.ReadDate == nil {
		t.Fatalf("letter = %+v, want read", l)
	}
	if app.data.newLetters() != 0 {
		t.Errorf("new letters = %d after reload, want 0", app.data.newLetters())
	}
	if !strings.Contains(app.status, "past self") {
		t.Errorf("status = %q", app.status)
	}

	press(app, "j")
	if sel, _ := app.letters.selected(); sel.ID != "old" {
		t.Errorf("selected = %q, want the older letter", sel.ID)
	}
	press(app, "m")
	if app.statusErr {
		t.Error("marking a read letter again is not an error")
	}
}

func TestLetters_WriteAndSend(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	app := createTestApp(t, store, 120)
	runCmd(app, app.Init())

	press(app, "4", "w")
	if !strings.Contains(app.View(), "A LETTER TO YOUR FUTURE SELF") {
		t.Fatal("w should open the writing desk")
	}
	if !strings.Contains(app.View(), "March 22, 2024") {
		t.Error("default delivery should be one week out")
	}

	press(app, "shift+tab")
	if !strings.Contains(app.View(), "April 14, 2024") {
		t.Error("shift+tab should switch delivery to one month")
	}

	press(app, "ctrl+s")
	if !app.statusErr || !app.letters.IsEditing() {
		t.Error("an empty letter should be refused")
	}

	typeText(app, "be kind")
	press(app, "ctrl+s")

	if app.letters.IsEditing() {
		t.Error("sending should close the editor")
	}
	letters := store.LoadLetters().Letters
	if len(letters) != 1 {
		t.Fatalf("letters = %d, want 1", len(letters))
	}
	if letters[0].Content != "be kind" || letters[0].DeliveryDate != "2024-04-14" {
		t.Errorf("letter = %+v", letters[0])
	}
	if len(app.data.waiting) != 1 {
		t.Errorf("waiting = %d after reload, want 1", len(app.data.waiting))
	}
	if !strings.Contains(app.status, "April 14, 2024") {
		t.Errorf("status = %q, want the delivery date", app.status)
	}
}

func TestLetters_CancelWriting(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	app := createTestApp(t, store, 120)

	press(app, "4", "w")
	typeText(app, "draft")
	press(app, "esc")

	if app.letters.IsEditing() {
		t.Error("esc should close the editor")
	}
	if len(store.LoadLetters().Letters) != 0 {
		t.Error("cancel should not send")
	}
}

func TestNextArrival(t *testing.T) {
	waiting := []storage.Letter{
		{ID: "b", DeliveryDate: "2024-05-01"},
		{ID: "bad", DeliveryDate: "someday"},
		{ID: "a", DeliveryDate: "2024-04-01"},
	}
	next, ok := nextArrival(waiting, fixedNow)
	if !ok || next.ID != "a" {
		t.Errorf("nextArrival = %q/%v, want a", next.ID, ok)
	}
	if _, ok := nextArrival([]storage.Letter{{DeliveryDate: "x"}}, fixedNow); ok {
		t.Error("malformed dates never arrive")
	}
}
