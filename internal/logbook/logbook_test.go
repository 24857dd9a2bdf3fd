package logbook

import "testing"

func TestAppendKeepsOrder(t *testing.T) {
	l := New()
	l.Append(Sent, "H1")
	l.Append(Received, "+1.234560E+00")
	l.Append(Debug, "note")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Text != "H1" || entries[0].Direction != Sent {
		t.Fatalf("first entry wrong: %+v", entries[0])
	}
	if entries[1].Direction != Received || entries[2].Direction != Debug {
		t.Fatalf("directions wrong: %+v", entries)
	}
	if entries[1].Time.Before(entries[0].Time) {
		t.Fatal("timestamps out of order")
	}
}

func TestAutoScrollTransitions(t *testing.T) {
	l := New()
	if !l.AutoScroll() {
		t.Fatal("new log should follow the bottom")
	}
	l.ScrollUp()
	if l.AutoScroll() {
		t.Fatal("scroll up should stop following")
	}
	l.Append(Received, "still not following")
	if l.AutoScroll() {
		t.Fatal("append must not resume following")
	}
	l.ScrollToBottom()
	if !l.AutoScroll() {
		t.Fatal("jump to bottom should resume following")
	}
}

func TestOnAppendSeesFollowFlag(t *testing.T) {
	l := New()
	var gotText string
	var gotFollow bool
	l.OnAppend(func(e Entry, follow bool) {
		gotText = e.Text
		gotFollow = follow
	})

	l.Append(Sent, "first")
	if gotText != "first" || !gotFollow {
		t.Fatalf("callback got (%q, %v), want (%q, true)", gotText, gotFollow, "first")
	}

	l.ScrollUp()
	l.Append(Received, "second")
	if gotText != "second" || gotFollow {
		t.Fatalf("callback got (%q, %v), want (%q, false)", gotText, gotFollow, "second")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	l := New()
	l.Append(Sent, "keep")
	entries := l.Entries()
	entries[0].Text = "mutated"
	if l.Entries()[0].Text != "keep" {
		t.Fatal("mutating the returned slice changed the log")
	}
}
