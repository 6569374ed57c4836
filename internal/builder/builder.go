package builder

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/tree"
	"github.com/AskiaADX/ADXStudio-sub004/internal/validator"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// OutputDirName is the build output directory under the project.
const OutputDirName = "bin"

// CompressionLevel is the deflate level used for every entry.
const CompressionLevel = 5

// Options configures a Builder. The embedded validator options are used for
// the pre-build validation, except that SkipXML and SkipAutoTest are ignored
// and SkipTests only skips unit tests.
type Options struct {
	validator.Options

	// OutputDir overrides <project>/bin.
	OutputDir string
}

// Builder validates and packages one project.
type Builder struct {
	opts Options
	log  logger.Logger
}

// New creates a Builder.
func New(opts Options) *Builder {
	return &Builder{opts: opts, log: logger.OrDefault(opts.Logger)}
}

// ValidatorOptions returns the options the pre-build validation runs with.
func (b *Builder) ValidatorOptions() validator.Options {
	v := b.opts.Options
	v.Logger = b.log
	v.SkipXML = false
	v.SkipAutoTest = false
	if v.SkipTests {
		v.SkipTests = false
		v.SkipUnitTest = true
	}
	return v
}

// Build validates the project and writes the archive. The validation report is
// returned even when validation fails; no archive is written in that case.
func (b *Builder) Build(ctx context.Context) (string, *validator.Report, error) {
	report, err := validator.New(b.ValidatorOptions()).Validate(ctx)
	if err != nil {
		return "", report, err
	}

	project := b.opts.ProjectPath
	m, err := adx.LoadManifest(filepath.Join(project, adx.ConfigFileName))
	if err != nil {
		return "", report, err
	}
	typ, err := m.Type()
	if err != nil {
		return "", report, err
	}

	outDir := b.opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(project, OutputDirName)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", report, fmt.Errorf("creating output directory: %w", err)
	}
	outputPath := filepath.Join(outDir, m.Name()+"."+string(typ))

	root, err := tree.Build(project, PackageFilter)
	if err != nil {
		return "", report, fmt.Errorf("reading project tree: %w", err)
	}
	if err := writeArchive(outputPath, project, root); err != nil {
		return "", report, err
	}

	b.log.Message("Archive written to %s", outputPath)
	if report.Warnings > 0 {
		b.log.Success("build succeeded with warnings")
	} else {
		b.log.Success("build succeeded")
	}
	return outputPath, report, nil
}

// packagedResourceDirs are the resources sub-directories that are packaged.
var packagedResourceDirs = map[string]bool{
	"dynamic": true,
	"static":  true,
	"statics": true,
	"share":   true,
}

// PackageFilter selects the archive entries of a project tree.
func PackageFilter(ancestors []string, entry fs.DirEntry) bool {
	name := entry.Name()
	if adx.IsIgnorable(name) {
		return false
	}

	switch {
	case len(ancestors) == 0:
		if entry.IsDir() {
			return name == adx.ResourcesDir
		}
		return adx.IsPackagedRootFile(name)
	case len(ancestors) == 1 && ancestors[0] == adx.ResourcesDir:
		return entry.IsDir() && packagedResourceDirs[name]
	default:
		return !strings.EqualFold(name, "bin") && !strings.EqualFold(name, "tests")
	}
}

// writeArchive writes the tree rooted at root to path. The partial file is
// removed on failure.
func writeArchive(path, root string, n *tree.Node) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, CompressionLevel)
	})

	walkErr := n.Walk(func(rel string, node *tree.Node) error {
		if node.IsDir() {
			if _, err := zw.Create(rel + "/"); err != nil {
				return fmt.Errorf("adding directory %s: %w", rel, err)
			}
			return nil
		}
		return addFile(zw, filepath.Join(root, filepath.FromSlash(rel)), rel)
	})
	if walkErr != nil {
		_ = zw.Close()
		return fmt.Errorf("writing archive: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("creating header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return nil
}
