package summary

import (
	"sort"
	"strings"

	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/parser"
)

// RootFiles selects what happens to documents directly under the root.
type RootFiles string

const (
	// RootFilesCategory groups root-level documents into a synthetic category.
	RootFilesCategory RootFiles = "category"
	// RootFilesOmit leaves root-level documents out of the generated sections.
	RootFilesOmit RootFiles = "omit"
)

// DefaultRootCategory is the title of the synthetic root-level category.
const DefaultRootCategory = "Main Documents"

// Order is a total order over categories.
type Order interface {
	Less(a, b models.Category) bool
}

// NumericOrder compares folder names by their leading number when both have
// one and the numbers differ, and byte-wise otherwise. Because digits sort
// before letters, numbered folders come before letter-initial ones.
type NumericOrder struct{}

// Less implements Order.
func (NumericOrder) Less(a, b models.Category) bool {
	pa, pb := parser.NumericPrefix(a.Key), parser.NumericPrefix(b.Key)
	if pa != "" && pb != "" {
		if c := compareDecimal(pa, pb); c != 0 {
			return c < 0
		}
	}
	return a.Key < b.Key
}

// NameOrder compares categories by display title, then by folder name.
type NameOrder struct{}

// Less implements Order.
func (NameOrder) Less(a, b models.Category) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.Key < b.Key
}

// compareDecimal compares two digit strings by numeric value without
// converting them, so arbitrarily long prefixes cannot overflow.
func compareDecimal(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Policy controls how documents are partitioned into categories.
type Policy struct {
	Order        Order
	RootFiles    RootFiles
	RootCategory string
}

// DefaultPolicy returns numeric ordering with a "Main Documents" root category.
func DefaultPolicy() Policy {
	return Policy{
		Order:        NumericOrder{},
		RootFiles:    RootFilesCategory,
		RootCategory: DefaultRootCategory,
	}
}

// Group partitions paths by their first segment. Every path lands in exactly
// one category, except root-level paths under RootFilesOmit which land in
// none. Titles are resolved only for grouped paths.
func (p Policy) Group(paths []string, title func(string) string) []models.Category {
	byKey := make(map[string][]string)
	for _, rel := range paths {
		key, _, nested := strings.Cut(rel, "/")
		if !nested {
			if p.RootFiles == RootFilesOmit {
				continue
			}
			key = ""
		}
		byKey[key] = append(byKey[key], rel)
	}

	cats := make([]models.Category, 0, len(byKey))
	for key, members := range byKey {
		sort.Strings(members)
		c := models.Category{Key: key, Title: p.categoryTitle(key)}
		c.Entries = make([]models.Document, 0, len(members))
		for _, rel := range members {
			c.Entries = append(c.Entries, models.Document{Path: rel, Title: title(rel)})
		}
		cats = append(cats, c)
	}

	order := p.Order
	if order == nil {
		order = NumericOrder{}
	}
	sort.Slice(cats, func(i, j int) bool { return order.Less(cats[i], cats[j]) })
	return cats
}

func (p Policy) categoryTitle(key string) string {
	if key != "" {
		return parser.CategoryTitle(key)
	}
	if p.RootCategory != "" {
		return p.RootCategory
	}
	return DefaultRootCategory
}
