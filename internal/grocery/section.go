package grocery

import "strings"

// Store sections an item can be filed under.
const (
	SectionMeat    = "Meat"
	SectionDairy   = "Dairy"
	SectionProduce = "Produce"
	SectionFreezer = "Freezer"
	SectionBreads  = "Breads"
	SectionOther   = "Other"
)

// SuggestSection guesses the store section for an item name. Matching is
// case-insensitive: exact names first, then keywords contained in the name.
// It reports false when nothing matches so callers can leave the section unset.
func SuggestSection(itemName string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "", false
	}

	if section, ok := exactSections[name]; ok {
		return section, true
	}

	for _, kw := range sectionKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.section, true
		}
	}

	return "", false
}

var exactSections = map[string]string{
	"chicken":     SectionMeat,
	"beef":        SectionMeat,
	"pork":        SectionMeat,
	"turkey":      SectionMeat,
	"bacon":       SectionMeat,
	"sausage":     SectionMeat,
	"ham":         SectionMeat,
	"steak":       SectionMeat,
	"salmon":      SectionMeat,
	"shrimp":      SectionMeat,
	"fish":        SectionMeat,
	"lamb":        SectionMeat,
	"ground beef": SectionMeat,

	"milk":         SectionDairy,
	"eggs":         SectionDairy,
	"butter":       SectionDairy,
	"cheese":       SectionDairy,
	"yogurt":       SectionDairy,
	"sour cream":   SectionDairy,
	"cream cheese": SectionDairy,
	"heavy cream":  SectionDairy,

	"apples":   SectionProduce,
	"bananas":  SectionProduce,
	"lemons":   SectionProduce,
	"avocados": SectionProduce,
	"tomatoes": SectionProduce,
	"potatoes": SectionProduce,
	"onions":   SectionProduce,
	"garlic":   SectionProduce,
	"lettuce":  SectionProduce,
	"spinach":  SectionProduce,
	"broccoli": SectionProduce,
	"carrots":  SectionProduce,
	"grapes":   SectionProduce,
	"cilantro": SectionProduce,

	"ice cream":    SectionFreezer,
	"frozen pizza": SectionFreezer,
	"popsicles":    SectionFreezer,
	"ice":          SectionFreezer,

	"bread":            SectionBreads,
	"bagels":           SectionBreads,
	"tortillas":        SectionBreads,
	"english muffins":  SectionBreads,
	"hamburger buns":   SectionBreads,
	"croissants":       SectionBreads,
	"pita":             SectionBreads,
	"sandwich bread":   SectionBreads,
	"hot dog buns":     SectionBreads,
	"dinner rolls":     SectionBreads,
	"sourdough loaf":   SectionBreads,
	"whole wheat loaf": SectionBreads,
}

type sectionKeyword struct {
	keyword string
	section string
}

// Longer phrases come first so "ice cream" wins over "cream" and
// "hot dog buns" over "hot dog".
var sectionKeywords = []sectionKeyword{
	{"ice cream", SectionFreezer},
	{"frozen", SectionFreezer},
	{"popsicle", SectionFreezer},

	{"english muffin", SectionBreads},
	{"hot dog bun", SectionBreads},
	{"hamburger bun", SectionBreads},
	{"sourdough", SectionBreads},
	{"bread", SectionBreads},
	{"bagel", SectionBreads},
	{"tortilla", SectionBreads},
	{"croissant", SectionBreads},
	{"roll", SectionBreads},
	{"bun", SectionBreads},

	{"chicken", SectionMeat},
	{"ground beef", SectionMeat},
	{"ground turkey", SectionMeat},
	{"pork chop", SectionMeat},
	{"hot dog", SectionMeat},
	{"deli meat", SectionMeat},
	{"steak", SectionMeat},
	{"bacon", SectionMeat},
	{"sausage", SectionMeat},
	{"salmon", SectionMeat},

	{"cream cheese", SectionDairy},
	{"cottage cheese", SectionDairy},
	{"greek yogurt", SectionDairy},
	{"almond milk", SectionDairy},
	{"oat milk", SectionDairy},
	{"yogurt", SectionDairy},
	{"cheese", SectionDairy},
	{"milk", SectionDairy},
	{"butter", SectionDairy},
	{"cream", SectionDairy},
	{"egg", SectionDairy},

	{"salad", SectionProduce},
	{"green onion", SectionProduce},
	{"sweet potato", SectionProduce},
	{"bell pepper", SectionProduce},
	{"berries", SectionProduce},
	{"berry", SectionProduce},
	{"apple", SectionProduce},
	{"banana", SectionProduce},
	{"tomato", SectionProduce},
	{"potato", SectionProduce},
	{"onion", SectionProduce},
	{"lettuce", SectionProduce},
	{"carrot", SectionProduce},
	{"fruit", SectionProduce},
}
