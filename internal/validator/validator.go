package validator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/AskiaADX/ADXStudio-sub004/internal/adx"
	"github.com/AskiaADX/ADXStudio-sub004/internal/config"
	"github.com/AskiaADX/ADXStudio-sub004/internal/logger"
	"github.com/AskiaADX/ADXStudio-sub004/internal/sequence"
	"github.com/AskiaADX/ADXStudio-sub004/internal/shell"
	"github.com/Masterminds/semver/v3"
)

// StageName identifies a validation stage.
type StageName string

const (
	StagePathCheck        StageName = "path-check"
	StageStructureCheck   StageName = "structure-check"
	StageExtensionCheck   StageName = "extension-check"
	StageSchemaInit       StageName = "schema-init"
	StageSchemaValidate   StageName = "schema-validate"
	StageManifestInfo     StageName = "manifest-info-check"
	StageConstraintsCheck StageName = "manifest-constraints-check"
	StageOutputsCheck     StageName = "outputs-check"
	StagePropertiesCheck  StageName = "properties-check"
	StageMasterPageCheck  StageName = "masterpage-check"
	StageAutoTest         StageName = "autotest-run"
	StageUnitTest         StageName = "unittest-run"
)

// Stages lists every stage in execution order.
var Stages = []StageName{
	StagePathCheck,
	StageStructureCheck,
	StageExtensionCheck,
	StageSchemaInit,
	StageSchemaValidate,
	StageManifestInfo,
	StageConstraintsCheck,
	StageOutputsCheck,
	StagePropertiesCheck,
	StageMasterPageCheck,
	StageAutoTest,
	StageUnitTest,
}

// xmlStages are removed by SkipXML.
var xmlStages = []StageName{
	StageSchemaValidate,
	StageManifestInfo,
	StageConstraintsCheck,
	StageOutputsCheck,
	StagePropertiesCheck,
	StageMasterPageCheck,
}

// UnitTestsDir is where a project keeps its unit tests.
var UnitTestsDir = filepath.Join("tests", "units")

// Options configures a Validator.
type Options struct {
	ProjectPath string

	// SkipTests removes both test stages.
	SkipTests bool
	// SkipUnitTest removes the unit test stage only.
	SkipUnitTest bool
	// SkipXML removes the schema and manifest stages.
	SkipXML bool
	// SkipAutoTest removes the auto-generated test stage.
	SkipAutoTest bool

	Logger logger.Logger

	// Session, when set, runs the test stages. Otherwise the shell is
	// started once per stage.
	Session *shell.Session
	// ShellPath, ShellArgs and ShellEnv describe the one-shot shell.
	ShellPath string
	ShellArgs []string
	ShellEnv  []string

	// LinterPath is the schema linter executable (default "xmllint").
	LinterPath string
	// SchemaDir holds <ADC|ADP>/<version>/config.xsd.
	SchemaDir string
}

// Validator runs the validation stages over one project.
type Validator struct {
	opts Options
	log  logger.Logger
}

// New creates a Validator.
func New(opts Options) *Validator {
	if opts.LinterPath == "" {
		opts.LinterPath = "xmllint"
	}
	if opts.SchemaDir == "" {
		opts.SchemaDir = filepath.Join(config.Dir(), "schemas")
	}
	return &Validator{opts: opts, log: logger.OrDefault(opts.Logger)}
}

// Options returns the effective options.
func (v *Validator) Options() Options { return v.opts }

// run is the state of one Validate call.
type run struct {
	opts   Options
	log    logger.Logger
	report *Report

	manifest    *adx.Manifest
	projectType adx.ProjectType
	version     *semver.Version
	index       *adx.ResourceIndex
	masterPages []string
}

// Validate runs the stages and returns the report. A fatal stage error is
// returned as a *StageError; the report is always returned.
func (v *Validator) Validate(ctx context.Context) (*Report, error) {
	r := &run{
		opts:   v.opts,
		log:    v.log,
		report: &Report{StartTime: time.Now()},
	}

	handlers := map[StageName]func(context.Context, *sequence.Tail) error{
		StagePathCheck:        r.pathCheck,
		StageStructureCheck:   r.structureCheck,
		StageExtensionCheck:   r.extensionCheck,
		StageSchemaInit:       r.schemaInit,
		StageSchemaValidate:   r.schemaValidate,
		StageManifestInfo:     r.manifestInfoCheck,
		StageConstraintsCheck: r.constraintsCheck,
		StageOutputsCheck:     r.outputsCheck,
		StagePropertiesCheck:  r.propertiesCheck,
		StageMasterPageCheck:  r.masterPageCheck,
		StageAutoTest:         r.autoTestRun,
		StageUnitTest:         r.unitTestRun,
	}

	steps := make([]sequence.Step, 0, len(Stages))
	for _, name := range Stages {
		fn := handlers[name]
		steps = append(steps, sequence.Step{
			Name: string(name),
			Run: func(ctx context.Context, tail *sequence.Tail) error {
				if err := fn(ctx, tail); err != nil {
					return &StageError{Stage: name, Err: err}
				}
				return nil
			},
		})
	}

	runner := sequence.New(steps...)
	runner.Remove(stageStrings(v.skipped())...)
	r.report.StagesPlanned = runner.Planned()

	err := runner.Run(ctx)

	r.report.StagesRun = runner.Successes()
	r.report.EndTime = time.Now()
	if err != nil {
		r.report.Errors++
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			r.log.Error("%v", stageErr.Err)
		} else {
			r.log.Error("%v", err)
		}
	}
	r.log.Message("%s", r.report.Summary())

	return r.report, err
}

// skipped returns the stages removed by the options.
func (v *Validator) skipped() []StageName {
	var names []StageName
	if v.opts.SkipTests {
		names = append(names, StageAutoTest, StageUnitTest)
	}
	if v.opts.SkipUnitTest {
		names = append(names, StageUnitTest)
	}
	if v.opts.SkipAutoTest {
		names = append(names, StageAutoTest)
	}
	if v.opts.SkipXML {
		names = append(names, xmlStages...)
	}
	return names
}

func stageStrings(names []StageName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func (r *run) warn(format string, args ...any) {
	r.report.Warnings++
	r.log.Warning(format, args...)
}

func (r *run) success(format string, args ...any) {
	r.report.Successes++
	r.log.Success(format, args...)
}
