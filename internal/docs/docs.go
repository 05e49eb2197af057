// Package docs builds the applications index: a markdown catalogue of
// every application package under a root directory and the tool methods
// it exposes.
package docs

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentware/appforge/internal/transform"
)

// AppDoc describes one application package for the index.
type AppDoc struct {
	Slug  string
	Doc   string
	Tools []ToolDoc
}

// ToolDoc is one tool method with its leading doc comment.
type ToolDoc struct {
	Name string
	Doc  string
}

// Collect walks root and builds an AppDoc for every subdirectory that
// contains an app.go with at least one tool method. Results are sorted
// by slug.
func Collect(root string) ([]AppDoc, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read applications root: %w", err)
	}

	var apps []AppDoc
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name(), "app.go")
		src, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc, err := describe(entry.Name(), path, src)
		if err != nil {
			return nil, err
		}
		if len(doc.Tools) == 0 {
			continue
		}
		apps = append(apps, doc)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Slug < apps[j].Slug })
	return apps, nil
}

func describe(slug, path string, src []byte) (AppDoc, error) {
	_, file, err := transform.ParseSource(path, src)
	if err != nil {
		return AppDoc{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc := AppDoc{Slug: slug}
	if file.Doc != nil {
		doc.Doc = firstSentence(file.Doc.Text())
	}

	tools := transform.DiscoverTools(file)
	for _, name := range tools.Names() {
		doc.Tools = append(doc.Tools, ToolDoc{Name: name, Doc: methodDoc(file, name)})
	}
	return doc, nil
}

func methodDoc(file *ast.File, name string) string {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Name.Name != name || fn.Doc == nil {
			continue
		}
		return firstSentence(fn.Doc.Text())
	}
	return ""
}

// firstSentence trims a doc comment down to its first sentence, the
// way godoc synopses do.
func firstSentence(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if i := strings.Index(text, ". "); i >= 0 {
		text = text[:i+1]
	}
	return strings.TrimSpace(text)
}

// Render generates the README applications section.
func Render(apps []AppDoc) string {
	var b strings.Builder

	b.WriteString("# Applications\n\n")
	b.WriteString(fmt.Sprintf("%d applications, %d tools.\n\n", len(apps), countTools(apps)))

	for _, app := range apps {
		b.WriteString("## ")
		b.WriteString(app.Slug)
		b.WriteString("\n\n")
		if app.Doc != "" {
			b.WriteString(app.Doc)
			b.WriteString("\n\n")
		}
		for _, tool := range app.Tools {
			b.WriteString("- `")
			b.WriteString(tool.Name)
			b.WriteString("`")
			if tool.Doc != "" {
				b.WriteString(" — ")
				b.WriteString(tool.Doc)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func countTools(apps []AppDoc) int {
	var n int
	for _, app := range apps {
		n += len(app.Tools)
	}
	return n
}
