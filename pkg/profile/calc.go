package profile

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// LanguageShare is one row of the language bar chart.
type LanguageShare struct {
	Name       string
	Bytes      int64
	Percentage float64 // Share of the filtered total, rounded to one decimal
	Color      string  // Linguist color
}

// LanguagePercentages drops excluded languages, sorts the rest by byte count
// (ties alphabetical) and returns the top maxDisplay with their share of the
// filtered total. An empty or all-zero histogram yields an empty slice.
func LanguagePercentages(langs Languages, exclude []string, maxDisplay int) []LanguageShare {
	shares := []LanguageShare{}
	var total int64
	for name, b := range langs {
		if slices.Contains(exclude, name) {
			continue
		}
		total += b
		shares = append(shares, LanguageShare{Name: name, Bytes: b})
	}
	if total == 0 {
		return []LanguageShare{}
	}

	slices.SortFunc(shares, func(a, b LanguageShare) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	shares = shares[:min(len(shares), max(maxDisplay, 0))]

	for i := range shares {
		pct := float64(shares[i].Bytes) / float64(total) * 100
		shares[i].Percentage = math.Round(pct*10) / 10
		shares[i].Color = theme.LanguageColor(shares[i].Name)
	}
	return shares
}

// FormatCount abbreviates n for display: 1234 -> "1.2k", 1000000 -> "1.0M".
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}
