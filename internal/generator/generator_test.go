package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
	"github.com/google/uuid"
)

func TestNewData(t *testing.T) {
	d := NewData("slider", config.Author{Name: "Jane", Email: "jane@example.com"})
	if _, err := uuid.Parse(d.GUID); err != nil {
		t.Errorf("GUID %q is not a uuid: %v", d.GUID, err)
	}
	if d.Year == 0 {
		t.Error("Year should not be zero")
	}
	if len(d.Date) != len("2006-01-02") {
		t.Errorf("Date = %q", d.Date)
	}
	if NewData("slider", config.Author{}).GUID == d.GUID {
		t.Error("GUIDs should differ between projects")
	}
}

func TestData_AuthorLine(t *testing.T) {
	tests := []struct {
		author config.Author
		want   string
	}{
		{config.Author{Name: "Jane", Email: "jane@example.com"}, "Jane <jane@example.com>"},
		{config.Author{Name: "Jane"}, "Jane"},
		{config.Author{Email: "jane@example.com"}, "<jane@example.com>"},
		{config.Author{}, ""},
	}
	for _, tt := range tests {
		if got := (Data{Author: tt.author}).AuthorLine(); got != tt.want {
			t.Errorf("AuthorLine(%+v) = %q, want %q", tt.author, got, tt.want)
		}
	}
}

func TestTemplates(t *testing.T) {
	for _, typ := range []adx.ProjectType{adx.TypeADC, adx.TypeADP} {
		names, err := Templates(typ)
		if err != nil {
			t.Fatalf("Templates(%s) error: %v", typ, err)
		}
		if len(names) != 1 || names[0] != DefaultTemplate {
			t.Errorf("Templates(%s) = %v, want [default]", typ, names)
		}
	}
}

func TestGenerate_ADC(t *testing.T) {
	dir := t.TempDir()
	data := NewData("slider", config.Author{Name: "Jane", Email: "jane@example.com", Company: "Smith & Co"})

	result, err := Generate(Options{Type: adx.TypeADC, OutputDir: dir, Data: data})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := []string{
		"config.xml",
		"readme.md",
		"resources/dynamic/default.html",
		"resources/dynamic/fallback.html",
		"resources/static/default.css",
		"resources/static/default.js",
	}
	if strings.Join(result.Files, ",") != strings.Join(want, ",") {
		t.Errorf("Files = %v, want %v", result.Files, want)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v", result.Warnings)
	}
	if result.ProjectDir != filepath.Join(dir, "slider") {
		t.Errorf("ProjectDir = %q", result.ProjectDir)
	}
	if files, _ := result.Tree.Count(); files != len(want) {
		t.Errorf("Tree has %d files, want %d", files, len(want))
	}

	m, err := adx.LoadManifest(filepath.Join(result.ProjectDir, "config.xml"))
	if err != nil {
		t.Fatalf("generated manifest: %v", err)
	}
	if m.Name() != "slider" || m.Info.GUID != data.GUID {
		t.Errorf("manifest info = %+v", m.Info)
	}
	if m.Info.Company != "Smith & Co" {
		t.Errorf("Company = %q, want escaped and decoded back", m.Info.Company)
	}
	if m.Info.Author != "Jane <jane@example.com>" {
		t.Errorf("Author = %q", m.Info.Author)
	}

	html, err := os.ReadFile(filepath.Join(result.ProjectDir, "resources", "dynamic", "default.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "{%= CurrentQuestion.InputName() %}") {
		t.Error("AskiaScript was not copied verbatim")
	}
}

func TestGenerate_ADP(t *testing.T) {
	result, err := Generate(Options{Type: adx.TypeADP, OutputDir: t.TempDir(), Data: NewData("layout", config.Author{})})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	m, err := adx.LoadManifest(filepath.Join(result.ProjectDir, "config.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if typ, _ := m.Type(); typ != adx.TypeADP {
		t.Errorf("Type() = %q, want adp", typ)
	}
	page, err := os.ReadFile(filepath.Join(result.ProjectDir, "resources", "dynamic", "default.html"))
	if err != nil {
		t.Fatal(err)
	}
	if err := validator.CheckMasterPage(page); err != nil {
		t.Errorf("generated master page: %v", err)
	}
}

func TestGenerate_ProjectsValidate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake linter is a shell script")
	}
	linter := filepath.Join(t.TempDir(), "xmllint")
	if err := os.WriteFile(linter, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, typ := range []adx.ProjectType{adx.TypeADC, adx.TypeADP} {
		t.Run(string(typ), func(t *testing.T) {
			result, err := Generate(Options{Type: typ, OutputDir: t.TempDir(), Data: NewData("demo", config.Author{Name: "Jane"})})
			if err != nil {
				t.Fatal(err)
			}

			v := validator.New(validator.Options{
				ProjectPath: result.ProjectDir,
				LinterPath:  linter,
				SchemaDir:   t.TempDir(),
				Logger:      logger.Discard,
			})
			report, err := v.Validate(context.Background())
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if report.Warnings != 0 {
				t.Errorf("Warnings = %d, want 0", report.Warnings)
			}
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Generate(Options{Type: "widget", OutputDir: dir, Data: NewData("x", config.Author{})}); !errors.Is(err, adx.ErrUnknownProjectType) {
		t.Errorf("unknown type error = %v", err)
	}
	if _, err := Generate(Options{Type: adx.TypeADC, OutputDir: dir, Data: NewData("../escape", config.Author{})}); err == nil {
		t.Error("expected error for invalid name")
	}
	if _, err := Generate(Options{Type: adx.TypeADC, OutputDir: dir}); err == nil {
		t.Error("expected error without data")
	}
	if _, err := Generate(Options{Type: adx.TypeADC, Template: "fancy", OutputDir: dir, Data: NewData("x", config.Author{})}); err == nil {
		t.Error("expected error for unknown template")
	}

	busy := filepath.Join(dir, "busy")
	if err := os.MkdirAll(busy, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(busy, "keep.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Generate(Options{Type: adx.TypeADC, OutputDir: dir, Data: NewData("busy", config.Author{})})
	if err == nil || !strings.Contains(err.Error(), "not empty") {
		t.Errorf("non-empty dir error = %v", err)
	}
}
