package projects

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/hxj7031gino/my-cv/internal/model"
)

const (
	SelectedGridClass = "selected-works-grid"
	WorkGridClass     = "work-grid"
)

var cards = template.Must(template.New("cards").Parse(`
{{- define "selected"}}{{range .}}                <a class="selected-work-card" href="{{.Href}}">
                    <img src="{{.Thumb}}" alt="{{.DisplayTitle}}">
                    <div class="selected-work-title">{{.DisplayTitle}}</div>
                    <div class="selected-work-year">{{.Year}}</div>
                </a>
{{end}}{{end}}
{{- define "work"}}{{range .}}                <div class="work-card">
                    <a href="{{.Href}}">
                        <img src="{{.Thumb}}" alt="{{.DisplayTitle}}">
                        <div class="work-card-title">{{.DisplayTitle}}</div>
                        <div class="work-card-desc">{{.Year}}</div>
                    </a>
                </div>
{{end}}{{end}}`))

// SelectedCards renders the home page's featured project cards.
func SelectedCards(ps []model.Project) (string, error) {
	return renderCards("selected", ps)
}

// WorkCards renders the work grid's project cards.
func WorkCards(ps []model.Project) (string, error) {
	return renderCards("work", ps)
}

func renderCards(name string, ps []model.Project) (string, error) {
	var b strings.Builder
	if err := cards.ExecuteTemplate(&b, name, ps); err != nil {
		return "", fmt.Errorf("rendering %s cards: %w", name, err)
	}
	return b.String(), nil
}

var divTag = regexp.MustCompile(`(?i)<div\b|</div\s*>`)

// ReplaceDivInner swaps the content of the first <div class="class"> in
// page, keeping the wrapper. Nested divs are balanced so earlier card
// markup is replaced whole. It reports false when no such div exists.
func ReplaceDivInner(page, class, inner string) (string, bool) {
	open := regexp.MustCompile(`<div\s+class="` + regexp.QuoteMeta(class) + `"\s*>`)
	loc := open.FindStringIndex(page)
	if loc == nil {
		return page, false
	}
	start := loc[1]
	depth := 1
	for _, m := range divTag.FindAllStringIndex(page[start:], -1) {
		tag := page[start+m[0] : start+m[1]]
		if strings.HasPrefix(tag, "</") {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			end := start + m[0]
			return page[:start] + "\n" + inner + "            " + page[end:], true
		}
	}
	return page, false
}
