// Package render produces the badge markup handed to the render surface.
package render

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/streakbadge-io/streakbadge/internal/models"
)

// Data is the information a badge template can display.
type Data struct {
	Streak      int
	Username    string
	UpdatedAt   string
	Available   bool
	DebugBorder bool
}

// defaultTemplate is the standard badge: streak count over a dark pill.
const defaultTemplate = `<div class="badge{{if .DebugBorder}} badge-debug{{end}}">
  <span class="flame">&#x1F525;</span>
  <span class="streak">{{if .Available}}{{.Streak}}{{else}}&mdash;{{end}}</span>
  <span class="label">daily streak</span>
  <span class="user">{{.Username}}</span>
</div>`

// alternateTemplate is shown when the streak is current for today.
const alternateTemplate = `<div class="badge badge-alt{{if .DebugBorder}} badge-debug{{end}}">
  <span class="check">&#x2705;</span>
  <span class="streak">{{.Streak}}</span>
  <span class="label">streak kept &middot; {{.UpdatedAt}}</span>
  <span class="user">{{.Username}}</span>
</div>`

// overrides is the schema of the optional templates.yaml file. Either field
// may be empty to keep the built-in template.
type overrides struct {
	Default   string `yaml:"default"`
	Alternate string `yaml:"alternate"`
}

// Templates holds the parsed default and alternate badge templates.
type Templates struct {
	def *template.Template
	alt *template.Template
}

// Builtin returns the built-in template pair.
func Builtin() *Templates {
	t, err := parse(defaultTemplate, alternateTemplate)
	if err != nil {
		// Built-in sources are constants; a parse failure is a programming error.
		panic(err)
	}
	return t
}

// Load returns the built-in templates overlaid with any overrides found in
// the given yaml file. A missing file is not an error; a malformed file
// degrades to the built-ins.
func Load(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return Builtin(), fmt.Errorf("read templates %s: %w", path, err)
	}

	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Builtin(), fmt.Errorf("parse templates %s: %w", path, err)
	}

	def := defaultTemplate
	alt := alternateTemplate
	if strings.TrimSpace(o.Default) != "" {
		def = o.Default
	}
	if strings.TrimSpace(o.Alternate) != "" {
		alt = o.Alternate
	}

	t, err := parse(def, alt)
	if err != nil {
		return Builtin(), fmt.Errorf("parse templates %s: %w", path, err)
	}
	return t, nil
}

func parse(def, alt string) (*Templates, error) {
	d, err := template.New("default").Parse(def)
	if err != nil {
		return nil, fmt.Errorf("default template: %w", err)
	}
	a, err := template.New("alternate").Parse(alt)
	if err != nil {
		return nil, fmt.Errorf("alternate template: %w", err)
	}
	return &Templates{def: d, alt: a}, nil
}

// Render produces the markup for the given presentation mode.
func (t *Templates) Render(mode models.PresentationMode, d Data) (string, error) {
	tpl := t.def
	if mode == models.ModeAlternate {
		tpl = t.alt
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("render %s template: %w", mode, err)
	}
	return sb.String(), nil
}
