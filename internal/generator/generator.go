package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/tree"
	"github.com/google/uuid"
)

// DefaultTemplate is the template set used when none is named.
const DefaultTemplate = "default"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Data holds the variables available to templates.
type Data struct {
	Name        string
	GUID        string
	Description string
	Date        string // e.g. "2026-10-17"
	Year        int
	Author      config.Author
}

// AuthorLine renders "Name <email>", or whichever part is known.
func (d Data) AuthorLine() string {
	switch {
	case d.Author.Name != "" && d.Author.Email != "":
		return fmt.Sprintf("%s <%s>", d.Author.Name, d.Author.Email)
	case d.Author.Email != "":
		return "<" + d.Author.Email + ">"
	}
	return d.Author.Name
}

// NewData creates Data with a fresh GUID and today's date.
func NewData(name string, author config.Author) *Data {
	now := time.Now()
	return &Data{
		Name:        name,
		GUID:        uuid.NewString(),
		Description: name,
		Date:        now.Format("2006-01-02"),
		Year:        now.Year(),
		Author:      author,
	}
}

// Options selects what to generate and where.
type Options struct {
	Type     adx.ProjectType
	Template string
	// OutputDir is the parent directory; the project is created in
	// OutputDir/<Name>.
	OutputDir string
	Data      *Data
}

// Result holds the outcome of a generation.
type Result struct {
	ProjectDir string
	Files      []string
	Tree       *tree.Node
	Warnings   []string
}

// Templates lists the template sets available for a project type.
func Templates(typ adx.ProjectType) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	prefix := string(typ) + "-"
	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, strings.TrimPrefix(e.Name(), prefix))
		}
	}
	return names, nil
}

// Generate renders a template set into a new project directory.
func Generate(opts Options) (*Result, error) {
	if opts.Type != adx.TypeADC && opts.Type != adx.TypeADP {
		return nil, fmt.Errorf("%w: %q (expected adc or adp)", adx.ErrUnknownProjectType, opts.Type)
	}
	if opts.Data == nil || !namePattern.MatchString(opts.Data.Name) {
		name := ""
		if opts.Data != nil {
			name = opts.Data.Name
		}
		return nil, fmt.Errorf("invalid project name %q: use letters, digits, dots, dashes and underscores", name)
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}

	setDir := path.Join("templates", string(opts.Type)+"-"+opts.Template)
	if _, err := fs.Stat(templatesFS, setDir); err != nil {
		return nil, fmt.Errorf("template %q not found for %s projects", opts.Template, opts.Type)
	}

	projectDir := filepath.Join(opts.OutputDir, opts.Data.Name)
	if entries, err := os.ReadDir(projectDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", projectDir)
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{ProjectDir: projectDir}

	funcs := template.FuncMap{"xml": template.HTMLEscapeString}
	err := fs.WalkDir(templatesFS, setDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, setDir), "/")
		if rel == "" {
			return nil
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(projectDir, filepath.FromSlash(rel)), 0o755)
		}

		content, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		outRel := rel
		if strings.HasSuffix(rel, ".tmpl") {
			outRel = strings.TrimSuffix(rel, ".tmpl")
			tmpl, err := template.New(d.Name()).Funcs(funcs).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", rel, err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, opts.Data); err != nil {
				return fmt.Errorf("executing template %s: %w", rel, err)
			}
			content = buf.Bytes()
		}

		outPath := filepath.Join(projectDir, filepath.FromSlash(outRel))
		if err := os.WriteFile(outPath, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sanity-check the generated manifest.
	m, err := adx.LoadManifest(filepath.Join(projectDir, adx.ConfigFileName))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not read generated manifest: %v", err))
	} else if typ, err := m.Type(); err != nil || typ != opts.Type {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Generated manifest is not an %s manifest", opts.Type))
	}

	result.Tree, err = tree.Build(projectDir, nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}
