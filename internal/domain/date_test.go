package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"feedback/internal/domain"
)

func TestDateJSON(t *testing.T) {
	var v struct {
		Date domain.Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"1970-01-01"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Date.String() != "1970-01-01" {
		t.Fatalf("got %q", v.Date.String())
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":"1970-01-01"}` {
		t.Fatalf("got %s", b)
	}
}

func TestDateJSON_Null(t *testing.T) {
	var v struct {
		Date domain.Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !v.Date.IsZero() {
		t.Fatal("expected zero date")
	}
	b, _ := json.Marshal(v)
	if string(b) != `{"date":null}` {
		t.Fatalf("got %s", b)
	}
}

func TestDateJSON_Invalid(t *testing.T) {
	var d domain.Date
	if err := json.Unmarshal([]byte(`"01/02/2020"`), &d); err == nil {
		t.Fatal("expected error")
	}
	if err := json.Unmarshal([]byte(`12`), &d); err == nil {
		t.Fatal("expected error")
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"nil", nil, ""},
		{"time", time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC), "2024-03-09"},
		{"string", "2024-03-09", "2024-03-09"},
		{"timestamp string", "2024-03-09T00:00:00Z", "2024-03-09"},
		{"bytes", []byte("2024-03-09"), "2024-03-09"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d domain.Date
			if err := d.Scan(tc.src); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if d.String() != tc.want {
				t.Fatalf("got %q, want %q", d.String(), tc.want)
			}
		})
	}
}

func TestDateValue(t *testing.T) {
	v, err := domain.Date{}.Value()
	if err != nil || v != nil {
		t.Fatalf("zero date should be NULL, got %v, %v", v, err)
	}
	d, _ := domain.ParseDate("2020-02-29")
	v, _ = d.Value()
	if v != "2020-02-29" {
		t.Fatalf("got %v", v)
	}
	if d.AddDays(1).String() != "2020-03-01" {
		t.Fatalf("AddDays: got %s", d.AddDays(1))
	}
}
