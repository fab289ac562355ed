package theme

// FallbackLanguageColor is used for languages missing from the table.
const FallbackLanguageColor = "#8b949e"

// GitHub Linguist colors for popular languages.
var languageColors = map[string]string{
	"Python":      "#3572A5",
	"JavaScript":  "#f1e05a",
	"TypeScript":  "#3178c6",
	"Java":        "#b07219",
	"C#":          "#178600",
	"C++":         "#f34b7d",
	"C":           "#555555",
	"Go":          "#00ADD8",
	"Rust":        "#dea584",
	"Ruby":        "#701516",
	"PHP":         "#4F5D95",
	"Swift":       "#F05138",
	"Kotlin":      "#A97BFF",
	"Dart":        "#00B4AB",
	"Scala":       "#c22d40",
	"R":           "#198CE7",
	"Lua":         "#000080",
	"Shell":       "#89e051",
	"PowerShell":  "#012456",
	"Haskell":     "#5e5086",
	"Elixir":      "#6e4a7e",
	"Clojure":     "#db5855",
	"Erlang":      "#B83998",
	"Julia":       "#a270ba",
	"Vim Script":  "#199f4b",
	"Objective-C": "#438eff",
	"Perl":        "#0298c3",
	"MATLAB":      "#e16737",
	"Groovy":      "#4298b8",
	"Vue":         "#41b883",
	"HTML":        "#e34c26",
	"CSS":         "#563d7c",
	"SCSS":        "#c6538c",
	"Dockerfile":  "#384d54",
	"Makefile":    "#427819",
	"HCL":         "#844FBA",
	"Nix":         "#7e7eff",
	"Zig":         "#ec915c",
	"Svelte":      "#ff3e00",
	"Astro":       "#ff5a03",
}

// LanguageColor returns the Linguist color for lang.
func LanguageColor(lang string) string {
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return FallbackLanguageColor
}
