package queue

import (
    "bytes"
    "encoding/json"
    "testing"
)

func TestFormatLine(t *testing.T) {
    ev := SelectionChangedEvent{
        WidgetID:    "w1",
        VehicleType: "flight",
        VehicleID:   "7",
        SeatIDs:     []uint64{3, 4},
        SeatLabels:  []string{"1C", "1D"},
        MaxSeats:    4,
        ChangedAt:   "2026-10-16T10:00:00Z",
    }
    want := "[2026-10-16T10:00:00Z] Selection changed | widget=w1 | vehicle=flight/7 | selected=2/4 | seats=[1C,1D]\n"
    if got := FormatLine(ev); got != want {
        t.Fatalf("line = %q\nwant   %q", got, want)
    }
}

func TestFormatLineEmptySelection(t *testing.T) {
    got := FormatLine(SelectionChangedEvent{WidgetID: "w2", VehicleType: "bus", VehicleID: "1", MaxSeats: 1})
    if !bytes.Contains([]byte(got), []byte("selected=0/1 | seats=[]")) {
        t.Fatalf("line = %q", got)
    }
}

func TestHandleMessage(t *testing.T) {
    body, err := json.Marshal(SelectionChangedEvent{WidgetID: "w3", SeatIDs: []uint64{1}, SeatLabels: []string{"LB-1"}})
    if err != nil {
        t.Fatal(err)
    }
    var buf bytes.Buffer
    if err := HandleMessage(&buf, body); err != nil {
        t.Fatalf("handle: %v", err)
    }
    if !bytes.Contains(buf.Bytes(), []byte("seats=[LB-1]")) {
        t.Fatalf("output = %q", buf.String())
    }
    if err := HandleMessage(&buf, []byte("{not json")); err == nil {
        t.Fatal("expected unmarshal error")
    }
}
