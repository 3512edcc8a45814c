package audio

// Outcome is the result of one conversion attempt
type Outcome struct {
	Success    bool
	OutputPath string
	Err        error
}

// Succeeded creates a successful outcome for the given output path
func Succeeded(outputPath string) Outcome {
	return Outcome{Success: true, OutputPath: outputPath}
}

// Failed creates a failed outcome
func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// Message returns the human-readable failure diagnostic, or "" on success
func (o Outcome) Message() string {
	if o.Success || o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
