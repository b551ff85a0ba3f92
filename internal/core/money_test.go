package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{".5", "0.5", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"-1", "", false},
		{"+1", "", false},
		{"1e3", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{".", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := MoneyFromInt(90).Div(3); !got.Equal(MoneyFromInt(30)) {
		t.Fatalf("90/3 = %s", got)
	}
	if got := MoneyFromInt(1200).Div(12); !got.Equal(MoneyFromInt(100)) {
		t.Fatalf("1200/12 = %s", got)
	}
	if got := MoneyFromFloat(0.1).Add(MoneyFromFloat(0.2)); !got.Equal(MoneyFromFloat(0.3)) {
		t.Fatalf("0.1+0.2 = %s", got)
	}
	var zero Money
	if !zero.IsZero() || zero.String() != "0" {
		t.Fatalf("zero value should be 0, got %s", zero)
	}
}

func TestMoneyDivisionIsExact(t *testing.T) {
	third := MoneyFromInt(100).Div(3)
	if !third.Mul(3).Equal(MoneyFromInt(100)) {
		t.Fatalf("100/3*3 = %s", third.Mul(3))
	}
	if !MoneyFromInt(200).Div(3).Equal(third.Mul(2)) {
		t.Fatalf("200/3 = %s, 2*(100/3) = %s", MoneyFromInt(200).Div(3), third.Mul(2))
	}
	mixed := third.Add(MoneyFromInt(100).Div(12)).Add(MoneyFromFloat(9.99))
	if !mixed.Mul(12).Equal(MoneyFromInt(400).Add(MoneyFromInt(100)).Add(MoneyFromFloat(119.88))) {
		t.Fatalf("mixed divisors = %s", mixed)
	}
	if third.Cmp(MoneyFromFloat(33.33)) <= 0 || third.Cmp(MoneyFromFloat(33.34)) >= 0 {
		t.Fatalf("100/3 should order between 33.33 and 33.34")
	}
	if got := third.Sub(third); !got.IsZero() {
		t.Fatalf("x-x = %s", got)
	}

	m := third
	if err := json.Unmarshal([]byte(`5`), &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(MoneyFromInt(5)) {
		t.Fatalf("decode over a divided amount = %s", m)
	}
	out, _ := json.Marshal(MoneyFromInt(1).Div(4))
	if string(out) != "0.25" {
		t.Fatalf("marshal 1/4 = %s", out)
	}
}

func mustParse(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q): %v", s, err)
	}
	return m
}

func TestMoneyJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"19.99"`), &m); err != nil {
		t.Fatalf("quoted: %v", err)
	}
	if !m.Equal(MoneyFromFloat(19.99)) {
		t.Fatalf("got %s", m)
	}
	out, err := json.Marshal(m)
	if err != nil || string(out) != "19.99" {
		t.Fatalf("marshal = %s, %v", out, err)
	}
	if err := json.Unmarshal([]byte(`{}`), &m); err == nil {
		t.Fatalf("expected error for object")
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{MoneyFromInt(0), "$0.00"},
		{MoneyFromFloat(12.5), "$12.50"},
		{MoneyFromFloat(1234.567), "$1,234.57"},
		{MoneyFromInt(-5), "-$5.00"},
		{MoneyFromInt(100).Div(3), "$33.33"},
		{mustParse(t, "123456789012345.67"), "$123,456,789,012,345.67"},
		{mustParse(t, "90071992547409.93"), "$90,071,992,547,409.93"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC))
	if got != "Mar 07, 2024" {
		t.Fatalf("FormatDate = %q", got)
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}

func TestLookupService(t *testing.T) {
	svc, ok := LookupService("  Microsoft   365 ")
	if !ok || svc.Key != "microsoft 365" || svc.Color != "#0078D4" {
		t.Fatalf("unexpected lookup: %+v %v", svc, ok)
	}
	svc, ok = LookupService("Hulu")
	if ok || svc.Key != CustomService {
		t.Fatalf("expected custom fallback, got %+v %v", svc, ok)
	}
	if got := ServiceDisplayName("netflix"); got != "Netflix" {
		t.Fatalf("display name = %q", got)
	}
}
