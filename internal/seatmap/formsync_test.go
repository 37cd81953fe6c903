package seatmap

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/iliyamo/seatmap/internal/model"
)

func formValues(form *html.Node) []string {
	var out []string
	for _, in := range findAll(form, isSeatField) {
		v, _ := getAttr(in, "value")
		out = append(out, v)
	}
	return out
}

func TestSyncFormReplacesPreviousFields(t *testing.T) {
	doc := NewDocument("seats", DefaultFormID)
	SyncForm(doc, DefaultFormID, []model.Seat{{ID: 1}, {ID: 2}})
	form := SyncForm(doc, DefaultFormID, []model.Seat{{ID: 2}})
	if form == nil {
		t.Fatal("form not found")
	}
	if got := formValues(form); len(got) != 1 || got[0] != "2" {
		t.Fatalf("fields = %v, want [2]", got)
	}
}

func TestSyncFormWithoutFormClearsStrayFields(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(`<div id="seats"></div><div id="other"><input type="hidden" name="seat_ids[]" value="5"></div>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form := SyncForm(doc, DefaultFormID, []model.Seat{{ID: 1}}); form != nil {
		t.Fatal("expected no form")
	}
	if strings.Contains(doc.String(), "seat_ids") {
		t.Fatalf("stale field left behind: %s", doc.String())
	}
}

func TestSyncFormOnParsedHostPage(t *testing.T) {
	page := `<html><body><div id="seats"></div><form id="bookingForm" action="/book"><button>Book</button></form></body></html>`
	doc, err := ParseDocument(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form := SyncForm(doc, DefaultFormID, []model.Seat{{ID: 3}, {ID: 8}})
	if got := formValues(form); strings.Join(got, ",") != "3,8" {
		t.Fatalf("fields = %v, want [3 8]", got)
	}
	if fields := FormFields(form); len(fields) != 2 || !strings.Contains(fields[0], `type="hidden"`) {
		t.Fatalf("rendered fields = %v", fields)
	}
}

func TestFormValues(t *testing.T) {
	v := FormValues([]model.Seat{{ID: 10}, {ID: 11}})
	if got := v.Encode(); got != "seat_ids%5B%5D=10&seat_ids%5B%5D=11" {
		t.Fatalf("encoded = %q", got)
	}
	if got := FormValues(nil).Encode(); got != "" {
		t.Fatalf("empty selection encoded to %q", got)
	}
}
