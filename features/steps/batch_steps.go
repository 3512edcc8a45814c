//go:build integration

package steps

import (
	"context"
	"fmt"

	appbatch "audio-converter/application/batch"
	"audio-converter/cmd"
	"audio-converter/domain/audio"
	"audio-converter/domain/dialog"
	"audio-converter/infrastructure/jobfile"

	"github.com/cucumber/godog"
)

// batchContext holds test state for batch scenarios
type batchContext struct {
	jobs *jobfile.File
}

// SharedBatchContext is reset before each scenario via Before hook
var SharedBatchContext *batchContext

func InitializeBatchScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedBatchContext = &batchContext{}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedBatchContext = nil
		return c, nil
	})

	ctx.Step(`^a job file:$`, aJobFile)
	ctx.Step(`^I run the batch$`, iRunTheBatch)
	ctx.Step(`^I run the batch without default trim$`, iRunTheBatchWithoutDefaultTrim)
	ctx.Step(`^I run the batch and pick the output directory$`, iRunTheBatchAndPickTheOutputDirectory)
}

func aJobFile(doc *godog.DocString) error {
	jobs, err := jobfile.Parse([]byte(doc.Content))
	if err != nil {
		return fmt.Errorf("invalid job file in scenario: %w", err)
	}
	SharedBatchContext.jobs = jobs
	return nil
}

func runBatch(defaultTrim bool, folder dialog.FolderPicker) error {
	p := getPipelineContext()
	if SharedBatchContext.jobs == nil {
		return fmt.Errorf("no job file given")
	}

	p.err = cmd.RunBatchWithDependencies(
		context.Background(),
		p.converter(),
		folder,
		SharedBatchContext.jobs,
		appbatch.Defaults{
			OutputDir:   p.outputDir,
			Audio:       audio.AudioEncodingConfig{}.WithDefaults(),
			DefaultTrim: defaultTrim,
		},
		p.output,
	)
	return nil
}

func iRunTheBatch() error {
	return runBatch(true, nil)
}

func iRunTheBatchWithoutDefaultTrim() error {
	return runBatch(false, nil)
}

func iRunTheBatchAndPickTheOutputDirectory() error {
	return runBatch(true, getPipelineContext().folder)
}
