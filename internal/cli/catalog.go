package cli

import (
	"slices"
	"strings"
)

// techCategory is a named group of technologies offered by the init wizard.
type techCategory struct {
	Name  string
	Techs []string
}

// techCatalog lists the technologies the init wizard offers, by category.
// A technology may appear in more than one category.
var techCatalog = []techCategory{
	{"Frontend", []string{
		"React", "Vue.js", "Angular", "Svelte", "Next.js", "Nuxt.js",
		"Astro", "HTML", "CSS", "SCSS", "Tailwind CSS", "Bootstrap",
	}},
	{"Backend", []string{
		"Node.js", "Python", "Go", "Rust", "Java", "C#", "Ruby", "PHP",
		"Elixir", "Kotlin",
	}},
	{"Mobile", []string{
		"React Native", "Flutter", "Swift", "Kotlin", "Dart",
	}},
	{"Database", []string{
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "SQLite", "DynamoDB",
		"Cassandra",
	}},
	{"DevOps & Cloud", []string{
		"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "Azure",
		"GitHub Actions", "GitLab CI", "Jenkins",
	}},
	{"Data & ML", []string{
		"Pandas", "NumPy", "TensorFlow", "PyTorch", "Scikit-learn", "Spark",
	}},
	{"Languages", []string{
		"TypeScript", "JavaScript", "Python", "Go", "Rust", "Java", "C++",
		"C", "Ruby", "PHP", "Scala", "Haskell", "Lua", "Zig",
	}},
	{"Tools", []string{
		"Git", "Vim", "VS Code", "Linux", "Nginx", "GraphQL", "REST", "gRPC",
	}},
}

// AllTechs returns every catalog technology once, sorted.
func AllTechs() []string {
	var all []string
	for _, c := range techCatalog {
		all = append(all, c.Techs...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// categoryTechs returns the technologies of the named category, matched
// case-insensitively, or nil.
func categoryTechs(name string) []string {
	for _, c := range techCatalog {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return slices.Clone(c.Techs)
		}
	}
	return nil
}

// defaultArms are the arms the wizard proposes for a fresh config.
var defaultArms = []struct {
	Name     string
	Category string
}{
	{"Frontend", "Frontend"},
	{"Backend", "Backend"},
	{"DevOps", "DevOps & Cloud"},
}

// defaultArmItems is how many catalog entries a proposed arm starts with.
const defaultArmItems = 4
