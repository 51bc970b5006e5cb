package models

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "whole dollars", input: "100", want: 10000},
		{name: "dollars and cents", input: "100.01", want: 10001},
		{name: "single fractional digit", input: "7.5", want: 750},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-3.25", want: -325},
		{name: "surrounding whitespace", input: " 12.00 ", want: 1200},
		{name: "sub-cent precision rejected", input: "1.005", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "garbage rejected", input: "ten dollars", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoney(%q) = %d cents, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents Money
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{750, "7.50"},
		{10001, "100.01"},
		{-325, "-3.25"},
	}
	for _, tt := range tests {
		if got := tt.cents.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONNumeric(t *testing.T) {
	out, err := json.Marshal(Money(10001))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Clients expect a bare number, not a quoted string.
	if string(out) != "100.01" {
		t.Errorf("marshal = %s, want 100.01", out)
	}

	var m Money
	if err := json.Unmarshal([]byte("42.10"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m != 4210 {
		t.Errorf("unmarshal number = %d, want 4210", m)
	}
	if err := json.Unmarshal([]byte(`"42.10"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m != 4210 {
		t.Errorf("unmarshal string = %d, want 4210", m)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan(int64(999)); err != nil {
		t.Fatalf("scan int64: %v", err)
	}
	if m != 999 {
		t.Errorf("scan int64 = %d, want 999", m)
	}
	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if m != 0 {
		t.Errorf("scan nil = %d, want 0", m)
	}
	if err := m.Scan("12.00"); err == nil {
		t.Error("scan string: want error, got nil")
	}
}
