package domain

import "testing"

func TestToolKindRoundTrip(t *testing.T) {
	kinds := []ToolKind{ToolSearchInventory, ToolCalculate, ToolWebSearch, ToolMonthlyReport}
	for _, k := range kinds {
		if got := ToolKindOf(k.String()); got != k {
			t.Errorf("ToolKindOf(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestToolKindOf(t *testing.T) {
	tests := []struct {
		name string
		want ToolKind
	}{
		{"search_inventory", ToolSearchInventory},
		{"SEARCH_INVENTORY", ToolSearchInventory},
		{"  calculate  ", ToolCalculate},
		{"generate_monthly_report", ToolMonthlyReport},
		{"make_coffee", ToolUnknown},
		{"", ToolUnknown},
	}
	for _, tt := range tests {
		if got := ToolKindOf(tt.name); got != tt.want {
			t.Errorf("ToolKindOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestToolNames(t *testing.T) {
	names := ToolNames()
	if len(names) != 4 {
		t.Fatalf("got %d names, want 4", len(names))
	}
	if names[0] != "search_inventory" || names[3] != "generate_monthly_report" {
		t.Errorf("names = %v, want prompt order", names)
	}
}
