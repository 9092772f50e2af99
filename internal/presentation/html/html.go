// Package html renders a tree as nested lists for browser hosts.
package html

import (
	"fmt"
	"html/template"
	"io"

	"github.com/aretw0/clicktree/pkg/domain"
)

var funcs = template.FuncMap{
	// Host styles are trusted the same way the host's own markup is.
	"style": func(n *domain.Node) template.CSS {
		css := ""
		if n.MarginLeft > 0 {
			css = fmt.Sprintf("margin-left: %dpx;", n.MarginLeft)
		}
		if n.Style != "" {
			if css != "" {
				css += " "
			}
			css += n.Style
		}
		return template.CSS(css)
	},
}

const fragment = `
{{- define "nodes" -}}
<ul class="clicktree">
{{- range . }}
{{- if .IsGroup }}
<li class="group{{ with .Glyph }} {{ . }}{{ end }}{{ if .Collapsed }} collapsed{{ end }}" data-key="{{ .Key }}" data-index="{{ .Index }}" style="{{ style . }}">
{{ if .Glyph }}<span class="glyph"></span>{{ end }}<span class="label toggle"><span class="marker">{{ if .Collapsed }}▸{{ else }}▾{{ end }}</span> {{ .Item.Name }}</span>
{{- template "children" . }}
</li>
{{- else }}
<li class="leaf{{ with .Glyph }} {{ . }}{{ end }}" data-index="{{ .Index }}" style="{{ style . }}">{{ if .Glyph }}<span class="glyph"></span>{{ end }}<a class="label select" data-id="{{ .Item.ID }}">{{ .Item.Name }}</a></li>
{{- end }}
{{- end }}
</ul>
{{- end -}}
{{- define "children" -}}
<div class="children"{{ if .Collapsed }} hidden{{ end }}>{{ template "nodes" .Children }}</div>
{{- end -}}
{{- define "tree" }}{{ template "nodes" .Root.Children }}{{ end -}}
`

const page = `{{ define "page" -}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
ul.clicktree { list-style: none; padding-left: 0; margin: 0; }
ul.clicktree li { line-height: 35px; }
.label { cursor: pointer; }
.glyph { cursor: default; }
.mid > .glyph::before { content: "├─ "; }
.last > .glyph::before { content: "└─ "; }
</style>
</head>
<body data-session="{{ .SessionID }}" data-height="{{ .Tree.Height }}">
{{ template "tree" .Tree }}
<script>
const session = {{ .SessionID }};
async function post(action, body) {
  await fetch("/sessions/" + encodeURIComponent(session) + "/" + action, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  });
}
document.addEventListener("click", async (e) => {
  const group = e.target.closest("li.group > .toggle");
  if (group) {
    const li = group.parentElement;
    await post("toggle", {key: li.dataset.key});
    li.classList.toggle("collapsed");
    li.querySelector(":scope > .children").hidden = li.classList.contains("collapsed");
    group.querySelector(".marker").textContent = li.classList.contains("collapsed") ? "▸" : "▾";
    return;
  }
  const leaf = e.target.closest("li.leaf > .select");
  if (leaf) {
    await post("select", {index: Number(leaf.parentElement.dataset.index)});
  }
});
</script>
</body>
</html>
{{- end }}`

var tmpl = template.Must(template.Must(template.New("clicktree").Funcs(funcs).Parse(fragment)).Parse(page))

// PageData feeds Page.
type PageData struct {
	Title     string
	SessionID string
	Tree      *domain.Tree
}

// Render writes the tree as an HTML fragment. Collapsed groups keep their
// children in the markup, hidden.
func Render(w io.Writer, tree *domain.Tree) error {
	return tmpl.ExecuteTemplate(w, "tree", tree)
}

// Page writes a standalone document that posts toggles and selections back to
// the HTTP adapter of the given session.
func Page(w io.Writer, data PageData) error {
	return tmpl.ExecuteTemplate(w, "page", data)
}
