package food

import "testing"

func TestToGramsKnownUnits(t *testing.T) {
	cases := []struct {
		amount float64
		unit   string
		want   float64
	}{
		{1, "g", 1},
		{2, "kg", 2000},
		{5, "oz", 141.75},
		{1, "lb", 453.59},
		{2, "cups", 480},
		{3, "tbsp", 45},
		{1, "slice", 30},
		{4, "OZ", 113.4},
		{2, "Grams", 2},
	}

	for _, c := range cases {
		got, ok := ToGrams(c.amount, c.unit)
		if !ok {
			t.Fatalf("ToGrams(%v, %q) not recognized", c.amount, c.unit)
		}
		if got != c.want {
			t.Errorf("ToGrams(%v, %q) = %v, want %v", c.amount, c.unit, got, c.want)
		}
	}
}

func TestToGramsUnknownUnit(t *testing.T) {
	if _, ok := ToGrams(3, "handful"); ok {
		t.Error("expected unknown unit to be rejected")
	}
	if _, ok := ToGrams(3, ""); ok {
		t.Error("expected empty unit to be rejected")
	}
}
