package grocery

import "testing"

func TestSuggestSectionExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"butter", SectionDairy},
		{"chicken", SectionMeat},
		{"english muffins", SectionBreads},
		{"ice cream", SectionFreezer},
		{"bananas", SectionProduce},
	}
	for _, tt := range tests {
		got, ok := SuggestSection(tt.input)
		if !ok || got != tt.want {
			t.Errorf("SuggestSection(%q) = %q, %v; want %q, true", tt.input, got, ok, tt.want)
		}
	}
}

func TestSuggestSectionKeywordMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"boneless chicken thighs", SectionMeat},
		{"vanilla ice cream", SectionFreezer},
		{"frozen peas", SectionFreezer},
		{"whole wheat bread", SectionBreads},
		{"hot dog buns", SectionBreads},
		{"greek yogurt cups", SectionDairy},
		{"organic baby spinach salad", SectionProduce},
	}
	for _, tt := range tests {
		got, ok := SuggestSection(tt.input)
		if !ok || got != tt.want {
			t.Errorf("SuggestSection(%q) = %q, %v; want %q, true", tt.input, got, ok, tt.want)
		}
	}
}

func TestSuggestSectionCaseInsensitive(t *testing.T) {
	got, ok := SuggestSection("  Butter ")
	if !ok || got != SectionDairy {
		t.Errorf("SuggestSection = %q, %v; want %q, true", got, ok, SectionDairy)
	}
}

func TestSuggestSectionNoMatch(t *testing.T) {
	for _, input := range []string{"", "   ", "dog food", "paper towels"} {
		if got, ok := SuggestSection(input); ok {
			t.Errorf("SuggestSection(%q) = %q, want no match", input, got)
		}
	}
}
