//go:build integration

package integration_test

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/builder"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/publisher"
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
)

// TestFullFlowGenerateValidateBuild tests the complete flow:
// generate project -> validate with tests -> build archive -> verify contents.
func TestFullFlowGenerateValidateBuild(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Step 1: Generate an ADC project and give it unit tests.
	project := env.generate(t, adx.TypeADC, "slider")
	writeFile(t, filepath.Join(project, "tests", "units", "default.xml"), "<tests/>\n")
	writeFile(t, filepath.Join(project, ".DS_Store"), "junk")

	// Step 2: Validate with every stage enabled.
	rec := logger.NewRecorder()
	report, err := validator.New(env.validatorOptions(project, rec)).Validate(ctx)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Errors != 0 || report.Warnings != 0 {
		t.Errorf("report = %+v, want no errors or warnings; log: %v", report, rec.Entries())
	}
	if report.StagesRun != report.StagesPlanned {
		t.Errorf("ran %d of %d planned stages", report.StagesRun, report.StagesPlanned)
	}
	for _, want := range []string{"Schema validation ok", "Auto tests ok", "Unit tests ok"} {
		if !rec.Contains(logger.LevelSuccess, want) {
			t.Errorf("missing success %q", want)
		}
	}

	// Step 3: The linter saw the manifest, the shell ran both test kinds.
	lint := env.linterCalls(t)
	if len(lint) != 1 || !strings.HasSuffix(lint[0], filepath.Join(project, "config.xml")) {
		t.Errorf("linter calls = %v", lint)
	}
	calls := env.shellCalls(t)
	wantCalls := []string{"test --auto " + project, "test " + project}
	if !slices.Equal(calls, wantCalls) {
		t.Errorf("shell calls = %v, want %v", calls, wantCalls)
	}

	// Step 4: Build, skipping unit tests. Auto tests still run.
	opts := env.validatorOptions(project, logger.Discard)
	opts.SkipTests = true
	archive, _, err := builder.New(builder.Options{Options: opts}).Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if archive != filepath.Join(project, "bin", "slider.adc") {
		t.Errorf("archive path = %s", archive)
	}
	if got := env.shellCalls(t); got[len(got)-1] != "test --auto "+project {
		t.Errorf("last shell call = %q, want auto tests", got[len(got)-1])
	}

	// Step 5: The archive holds the manifest and resources only.
	zr, err := zip.OpenReader(archive)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	for _, want := range []string{"config.xml", "readme.md", "resources/dynamic/default.html", "resources/static/default.css"} {
		if !slices.Contains(names, want) {
			t.Errorf("archive is missing %s (entries: %v)", want, names)
		}
	}
	for _, name := range names {
		if strings.HasPrefix(name, "tests") || strings.HasPrefix(name, "bin") || strings.Contains(name, ".DS_Store") {
			t.Errorf("archive should not contain %s", name)
		}
	}
}

// TestFullFlowADP checks that a generated page project passes the master page
// check and packages as .adp.
func TestFullFlowADP(t *testing.T) {
	env := setupTestEnv(t)
	project := env.generate(t, adx.TypeADP, "layout")

	rec := logger.NewRecorder()
	archive, report, err := builder.New(builder.Options{Options: env.validatorOptions(project, rec)}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Warnings != 0 {
		t.Errorf("warnings: %v", rec.Texts(logger.LevelWarning))
	}
	if filepath.Ext(archive) != ".adp" {
		t.Errorf("archive = %s, want .adp", archive)
	}
	if !rec.Contains(logger.LevelSuccess, "build succeeded") {
		t.Error("missing build success")
	}
}

// TestFailingTestsAreWarnings checks that failing project tests do not stop a
// build.
func TestFailingTestsAreWarnings(t *testing.T) {
	env := setupTestEnv(t)
	t.Setenv("FAKE_TEST_FAIL", "1")
	project := env.generate(t, adx.TypeADC, "gauge")
	writeFile(t, filepath.Join(project, "tests", "units", "default.xml"), "<tests/>\n")

	rec := logger.NewRecorder()
	archive, report, err := builder.New(builder.Options{Options: env.validatorOptions(project, rec)}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Warnings != 2 {
		t.Errorf("warnings = %d, want 2 (auto and unit tests): %v", report.Warnings, rec.Texts(logger.LevelWarning))
	}
	if !rec.Contains(logger.LevelSuccess, "build succeeded with warnings") {
		t.Error("missing build-with-warnings success")
	}
	assertFileExists(t, archive)
}

// TestBrokenProjectIsNotBuilt checks that a fatal validation error leaves no
// archive behind.
func TestBrokenProjectIsNotBuilt(t *testing.T) {
	env := setupTestEnv(t)
	project := env.generate(t, adx.TypeADC, "broken")
	writeFile(t, filepath.Join(project, "resources", "static", "setup.exe"), "MZ")

	_, _, err := builder.New(builder.Options{Options: env.validatorOptions(project, logger.Discard)}).Build(context.Background())
	if err == nil {
		t.Fatal("expected Build to fail on a denied extension")
	}
	var stageErr *validator.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != validator.StageExtensionCheck {
		t.Errorf("error = %v, want an extension-check failure", err)
	}
	assertFileNotExists(t, filepath.Join(project, "bin", "broken.adc"))
}

// TestBuildAndPublish uploads a built archive to a local endpoint.
func TestBuildAndPublish(t *testing.T) {
	env := setupTestEnv(t)
	project := env.generate(t, adx.TypeADC, "rating")

	var uploaded string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t0ken" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uploaded = header.Filename
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "42", "url": "https://store.example.com/42"})
	}))
	defer srv.Close()

	archive, _, err := builder.New(builder.Options{Options: env.validatorOptions(project, logger.Discard)}).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	receipt, err := publisher.New(srv.URL, "t0ken").Publish(context.Background(), archive)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if receipt.ID != "42" {
		t.Errorf("receipt id = %q", receipt.ID)
	}
	if uploaded != "rating.adc" {
		t.Errorf("uploaded file = %q, want rating.adc", uploaded)
	}
}
