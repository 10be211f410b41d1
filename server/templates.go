package server

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"splitCSV": func(joined string) []string {
		if joined == "" {
			return nil
		}
		return strings.Split(joined, ",")
	},
	// display turns wire identifiers like FOO_BAR into "Foo Bar".
	"display": displayName,
}

func displayName(value string) string {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(value, "_", " ")))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// ParsePage parses a page template together with the shared navigation
// partial, so every page renders the same shell.
func ParsePage(name string) (*template.Template, error) {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		return nil, err
	}
	nav, err := fs.ReadFile(TemplateFilesFS(), "nav.html")
	if err != nil {
		return nil, err
	}
	return tmpl.Parse(string(nav))
}
