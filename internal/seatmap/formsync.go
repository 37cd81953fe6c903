package seatmap

import (
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"github.com/iliyamo/seatmap/internal/model"
)

// SeatField is the repeated form field carrying selected seat ids.
const SeatField = "seat_ids[]"

// SyncForm reconciles the hidden seat fields of doc with seats.  Every
// previously synced field is removed wherever it sits in the document; if
// the form formID exists, one hidden input per seat is appended to it in
// selection order.  It returns the form, or nil when it is absent.
func SyncForm(doc *Document, formID string, seats []model.Seat) *html.Node {
	for _, in := range findAll(doc.root, isSeatField) {
		if in.Parent != nil {
			in.Parent.RemoveChild(in)
		}
	}

	form := doc.ElementByID(formID)
	if form == nil {
		return nil
	}
	for _, s := range seats {
		in := newElement("input", "")
		setAttr(in, "type", "hidden")
		setAttr(in, "name", SeatField)
		setAttr(in, "value", strconv.FormatUint(s.ID, 10))
		form.AppendChild(in)
	}
	return form
}

// FormFields returns the rendered hidden inputs currently inside form.
func FormFields(form *html.Node) []string {
	if form == nil {
		return []string{}
	}
	out := []string{}
	for _, in := range findAll(form, isSeatField) {
		out = append(out, RenderNode(in))
	}
	return out
}

// FormValues encodes seats the way a native submission of the synced form
// would.
func FormValues(seats []model.Seat) url.Values {
	v := url.Values{}
	for _, s := range seats {
		v.Add(SeatField, strconv.FormatUint(s.ID, 10))
	}
	return v
}

func isSeatField(n *html.Node) bool {
	if n.Data != "input" {
		return false
	}
	name, _ := getAttr(n, "name")
	return name == SeatField
}
