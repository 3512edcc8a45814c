//go:build integration

package steps

import (
	"context"
	"fmt"

	"audio-converter/cmd"
	"audio-converter/domain/audio"
	"audio-converter/domain/dialog"

	"github.com/cucumber/godog"
)

// mockDialogs answers pickers from canned values and records notifications
type mockDialogs struct {
	pickedFile    string
	savePath      string
	cancel        bool
	notifications []notification
}

type notification struct {
	message  string
	title    string
	severity dialog.Severity
}

func (m *mockDialogs) PickFile(filters ...dialog.Filter) (string, bool, error) {
	if m.cancel {
		return "", false, nil
	}
	return m.pickedFile, true, nil
}

func (m *mockDialogs) PickSavePath(filters ...dialog.Filter) (string, bool, error) {
	if m.cancel || m.savePath == "" {
		return "", false, nil
	}
	return m.savePath, true, nil
}

func (m *mockDialogs) Notify(message, title string, severity dialog.Severity) (bool, error) {
	m.notifications = append(m.notifications, notification{message: message, title: title, severity: severity})
	return true, nil
}

// convertContext holds test state for convert scenarios
type convertContext struct {
	input   cmd.ConvertInput
	dialogs *mockDialogs
}

// SharedConvertContext is reset before each scenario via Before hook
var SharedConvertContext *convertContext

func getConvertContext() *convertContext {
	return SharedConvertContext
}

func InitializeConvertScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedConvertContext = &convertContext{
			input:   cmd.ConvertInput{Audio: audio.AudioEncodingConfig{}.WithDefaults()},
			dialogs: &mockDialogs{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedConvertContext = nil
		return c, nil
	})

	ctx.Step(`^the title is "([^"]*)" and the artist is "([^"]*)"$`, theTitleIsAndTheArtistIs)
	ctx.Step(`^the output format is "([^"]*)"$`, theOutputFormatIs)
	ctx.Step(`^the audio is "([^"]*)" at "([^"]*)" Hz with (\d+) channels?$`, theAudioIsAtHzWithChannels)
	ctx.Step(`^the clip starts at "([^"]*)" and lasts "([^"]*)"$`, theClipStartsAtAndLasts)
	ctx.Step(`^the picker will return "([^"]*)"$`, thePickerWillReturn)
	ctx.Step(`^the save picker will return "([^"]*)"$`, theSavePickerWillReturn)
	ctx.Step(`^the user cancels the picker$`, theUserCancelsThePicker)

	ctx.Step(`^I convert "([^"]*)" to "([^"]*)"$`, iConvertTo)
	ctx.Step(`^I convert "([^"]*)" with output filename "([^"]*)"$`, iConvertWithOutputFilename)
	ctx.Step(`^I convert "([^"]*)" without an output path$`, iConvertWithoutAnOutputPath)
	ctx.Step(`^I convert "([^"]*)" and pick the output directory$`, iConvertAndPickTheOutputDirectory)
	ctx.Step(`^I convert interactively$`, iConvertInteractively)
	ctx.Step(`^I convert interactively and pick the output$`, iConvertInteractivelyAndPickTheOutput)

	ctx.Step(`^an? "([^"]*)" notification titled "([^"]*)" should have been shown$`, aNotificationTitledShouldHaveBeenShown)
	ctx.Step(`^no notification should have been shown$`, noNotificationShouldHaveBeenShown)
}

func theTitleIsAndTheArtistIs(title, artist string) error {
	c := getConvertContext()
	c.input.Title = title
	c.input.Artist = artist
	return nil
}

func theOutputFormatIs(format string) error {
	c := getConvertContext()
	c.input.Audio.Format = format
	return nil
}

func theAudioIsAtHzWithChannels(bitrate, sampleRate string, channels int) error {
	c := getConvertContext()
	c.input.Audio.Bitrate = bitrate
	c.input.Audio.SampleRate = sampleRate
	c.input.Audio.Channels = channels
	return nil
}

func theClipStartsAtAndLasts(start, duration string) error {
	c := getConvertContext()
	c.input.Start = start
	c.input.End = duration
	return nil
}

func thePickerWillReturn(path string) error {
	getConvertContext().dialogs.pickedFile = path
	return nil
}

func theSavePickerWillReturn(path string) error {
	getConvertContext().dialogs.savePath = path
	return nil
}

func theUserCancelsThePicker() error {
	getConvertContext().dialogs.cancel = true
	return nil
}

func (c *convertContext) run(dialogs cmd.ConvertDialogs) {
	p := getPipelineContext()
	c.input.OutputDir = p.outputDir
	p.err = cmd.RunConvertWithDependencies(
		context.Background(),
		p.converter(),
		dialogs,
		nil,
		c.input,
		p.output,
	)
}

func iConvertTo(source, output string) error {
	c := getConvertContext()
	c.input.Source = source
	c.input.Output = output
	c.run(cmd.ConvertDialogs{})
	return nil
}

func iConvertWithOutputFilename(source, filename string) error {
	c := getConvertContext()
	c.input.Source = source
	c.input.OutputFilename = filename
	c.run(cmd.ConvertDialogs{})
	return nil
}

func iConvertWithoutAnOutputPath(source string) error {
	c := getConvertContext()
	c.input.Source = source
	c.run(cmd.ConvertDialogs{})
	return nil
}

func iConvertAndPickTheOutputDirectory(source string) error {
	c := getConvertContext()
	c.input.Source = source
	c.input.PickOutputDir = true
	c.run(cmd.ConvertDialogs{Folder: getPipelineContext().folder})
	return nil
}

func iConvertInteractively() error {
	c := getConvertContext()
	c.input.Interactive = true
	c.run(cmd.ConvertDialogs{Files: c.dialogs, Save: c.dialogs, Notifier: c.dialogs})
	return nil
}

func iConvertInteractivelyAndPickTheOutput() error {
	c := getConvertContext()
	c.input.PickOutput = true
	return iConvertInteractively()
}

func aNotificationTitledShouldHaveBeenShown(severity, title string) error {
	c := getConvertContext()
	want := dialog.ParseSeverity(severity)
	for _, n := range c.dialogs.notifications {
		if n.title == title && n.severity == want {
			return nil
		}
	}
	return fmt.Errorf("expected %s notification %q, got %+v", want, title, c.dialogs.notifications)
}

func noNotificationShouldHaveBeenShown() error {
	c := getConvertContext()
	if len(c.dialogs.notifications) > 0 {
		return fmt.Errorf("expected no notifications, got %+v", c.dialogs.notifications)
	}
	return nil
}
