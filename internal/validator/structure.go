package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
)

func (r *run) pathCheck(context.Context, *sequence.Tail) error {
	info, err := os.Stat(r.opts.ProjectPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoSuchDirectory, r.opts.ProjectPath)
	}
	return nil
}

func (r *run) structureCheck(context.Context, *sequence.Tail) error {
	configPath := filepath.Join(r.opts.ProjectPath, adx.ConfigFileName)
	info, err := os.Stat(configPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoConfigFile, configPath)
	}

	idx, err := adx.BuildResourceIndex(r.opts.ProjectPath)
	if err != nil {
		return err
	}
	r.index = idx
	r.success("Directory structure ok")
	return nil
}

func (r *run) extensionCheck(context.Context, *sequence.Tail) error {
	untrusted := 0
	for _, f := range r.index.Files() {
		rel := filepath.Join(adx.ResourcesDir, string(f.Area), f.Name)
		if adx.ExtensionDenied(f.Name) {
			return fmt.Errorf("%w: %s", ErrDeniedExtension, rel)
		}
		if !adx.ExtensionAllowed(f.Name) {
			untrusted++
			r.warn("Untrusted file extension: %s", rel)
		}
	}
	if untrusted == 0 {
		r.success("File extensions ok")
	}
	return nil
}

func (r *run) schemaInit(_ context.Context, tail *sequence.Tail) error {
	m, err := adx.LoadManifest(filepath.Join(r.opts.ProjectPath, adx.ConfigFileName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	typ, err := m.Type()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	version, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	r.manifest, r.projectType, r.version = m, typ, version

	switch typ {
	case adx.TypeADC:
		tail.Remove(string(StageMasterPageCheck))
	case adx.TypeADP:
		tail.Remove(string(StageConstraintsCheck))
	}
	r.report.StagesPlanned = tail.Planned()
	return nil
}

// SchemaPath returns the schema file for a project type and version.
func SchemaPath(dir string, typ adx.ProjectType, version string, legacy bool) string {
	if legacy {
		version = "legacy"
	}
	return filepath.Join(dir, strings.ToUpper(string(typ)), version, "config.xsd")
}

func (r *run) schemaValidate(ctx context.Context, _ *sequence.Tail) error {
	schema := SchemaPath(r.opts.SchemaDir, r.projectType, r.version.String(), r.manifest.IsLegacyNamespace())
	configPath := filepath.Join(r.opts.ProjectPath, adx.ConfigFileName)

	linter := &shell.OneShot{Executable: r.opts.LinterPath}
	out, err := linter.Run(ctx, "--noout", "--schema", schema, configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if out.ExitCode != 0 {
		detail := strings.TrimSpace(out.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("%s exited with code %d", r.opts.LinterPath, out.ExitCode)
		}
		return fmt.Errorf("%w: %s", ErrSchemaValidation, detail)
	}
	r.success("Schema validation ok")
	return nil
}
