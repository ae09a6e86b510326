package schema

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Stock #", "stock"},
		{"Stock#", "stock"},
		{"  STOCK   NUMBER ", "stock number"},
		{"N/U", "n u"},
		{"Lot Location", "lot location"},
		{"VIN", "vin"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_VautoHeaders(t *testing.T) {
	header := []string{"Stock #", "VIN", "Dealer Name", "Type", "Status", "Year"}

	idx, missing := Vauto.Resolve(header)
	if len(missing) != 0 {
		t.Fatalf("missing columns: %v", missing)
	}

	want := map[string]int{
		ColStock:  0,
		ColVIN:    1,
		ColStore:  2,
		ColType:   3,
		ColStatus: 4,
	}
	for key, pos := range want {
		if idx[key] != pos {
			t.Errorf("idx[%q] = %d, want %d", key, idx[key], pos)
		}
	}
}

func TestResolve_ToleratesCasingAndSpacing(t *testing.T) {
	header := []string{"stock  number", "vin", "LOT LOCATION", "n/u", "STATUS"}

	idx, missing := Reynolds.Resolve(header)
	if len(missing) != 0 {
		t.Fatalf("missing columns: %v", missing)
	}
	if idx[ColStore] != 2 {
		t.Errorf("idx[store] = %d, want 2", idx[ColStore])
	}
	if idx[ColType] != 3 {
		t.Errorf("idx[type] = %d, want 3", idx[ColType])
	}
}

func TestResolve_ReportsMissingRequired(t *testing.T) {
	header := []string{"VIN", "Stock #", "Lot Location", "N/U"}

	_, missing := Reynolds.Resolve(header)
	if len(missing) != 1 || missing[0] != "Status" {
		t.Errorf("missing = %v, want [Status]", missing)
	}
}

func TestResolve_OptionalColumnAbsent(t *testing.T) {
	header := []string{"VIN", "Stock #", "Dealer Name", "Type"}

	idx, missing := Vauto.Resolve(header)
	if len(missing) != 0 {
		t.Fatalf("missing columns: %v", missing)
	}
	if _, ok := idx[ColStatus]; ok {
		t.Error("status should not resolve when the column is absent")
	}
}
