package templates

import (
	"html/template"
	"slices"
	"unicode/utf8"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"findaccommodation/api"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"cx":         Cx,
		"capitalize": Capitalize,
		"title":      Title,
		"money":      Money,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"contains":   func(list []string, s string) bool { return slices.Contains(list, s) },
		"plural":     Plural,
		"shareHref":  ShareHref,
		"cityOptions": func(cities []api.City, selected string) CityOptionsProps {
			return CityOptionsProps{Cities: cities, Selected: selected}
		},
	}
}

// ShareHref marks a share link as a trusted URL. Share links are built from
// escaped parts and may use app schemes like viber:// that html/template would
// otherwise blank out.
func ShareHref(u string) template.URL {
	return template.URL(u)
}

// Cx joins class lists, letting later Tailwind utilities override earlier
// conflicting ones.
func Cx(classes ...string) string {
	return twmerge.Merge(classes...)
}

// Capitalize upper-cases the first letter of s and leaves the rest as is.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(s[:size]) + s[size:]
}

// Money formats an amount with thousands separators, e.g. 1,250,000.
func Money(amount int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", amount)
}

// Title upper-cases the first letter of every word.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
