package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if date.String() != "2026-03-14" {
		t.Errorf("String() = %q, want 2026-03-14", date.String())
	}

	for _, bad := range []string{"03/14/2026", "2026-3-14", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): want error, got nil", bad)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	date, _ := ParseDate("2026-03-14")
	out, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-03-14"` {
		t.Errorf("marshal = %s", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != date.String() {
		t.Errorf("round trip = %s, want %s", back, date)
	}
}

func TestDateScanDropsTimeComponent(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2026, 3, 14, 18, 45, 12, 0, time.UTC)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if d.String() != "2026-03-14" {
		t.Errorf("scanned date = %s, want 2026-03-14", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("time component survived scan: %v", d.Time)
	}
}
