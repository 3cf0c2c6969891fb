package domain

import "go.trai.ch/zerr"

// Descriptor authoring errors. These are detectable before anything runs.
var (
	// ErrUnknownInputReference is returned when a command argument references an input the descriptor does not declare.
	ErrUnknownInputReference = zerr.New("command references undeclared input")

	// ErrUnreferencedInput is returned when a required input is never used by the command.
	ErrUnreferencedInput = zerr.New("required input is not referenced by the command")

	// ErrMalformedDescriptor is returned when a descriptor violates its own schema.
	ErrMalformedDescriptor = zerr.New("malformed task descriptor")

	// ErrDuplicateName is returned when two inputs, two outputs or two descriptors share a name.
	ErrDuplicateName = zerr.New("duplicate name")
)

// Binding errors. These are detectable when the command is rendered.
var (
	// ErrUnknownOperation is returned when no descriptor matches the requested task name.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrUnknownInput is returned when a value is bound to an input the descriptor does not declare.
	ErrUnknownInput = zerr.New("unknown input")

	// ErrMissingRequiredInput is returned when a required input has no value and no default.
	ErrMissingRequiredInput = zerr.New("missing required input")

	// ErrInvalidEnumValue is returned when a string value is outside the input's declared enum.
	ErrInvalidEnumValue = zerr.New("invalid enum value")

	// ErrInvalidExtension is returned when a staged file does not carry one of the declared extensions.
	ErrInvalidExtension = zerr.New("file extension not allowed")

	// ErrInputNotFound is returned when a bound file or folder source does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputStageFailed is returned when an input cannot be copied into the working directory.
	ErrInputStageFailed = zerr.New("failed to stage input")

	// ErrInvalidBinding is returned when a name=value binding cannot be parsed.
	ErrInvalidBinding = zerr.New("invalid binding, expected name=value")
)

// Execution errors. These are detectable only after the subprocess runs.
var (
	// ErrTaskExecutionFailed is returned when the external command exits unsuccessfully.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrOutputMissing is returned when a declared output does not exist after execution.
	ErrOutputMissing = zerr.New("declared output missing")

	// ErrOutputKindMismatch is returned when a declared output exists with the wrong kind.
	ErrOutputKindMismatch = zerr.New("declared output has the wrong kind")

	// ErrOutputHashFailed is returned when an output's digest cannot be computed.
	ErrOutputHashFailed = zerr.New("failed to compute output digest")
)

// Configuration and storage errors.
var (
	// ErrConfigNotFound is returned when no project file is found.
	ErrConfigNotFound = zerr.New("could not find " + ProjectFileName)

	// ErrConfigReadFailed is returned when the project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidJobName is returned when a job name contains invalid characters.
	ErrInvalidJobName = zerr.New("invalid job name")

	// ErrInvalidTerminal is returned when the terminal mode is neither pipe nor pty.
	ErrInvalidTerminal = zerr.New("invalid terminal mode, expected 'pipe' or 'pty'")

	// ErrInvalidLogFormat is returned when --log-format names an unknown format.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'auto', 'pretty' or 'json'")

	// ErrInvalidOutputMode is returned when --output-mode names an unknown mode.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'auto', 'tui' or 'linear'")

	// ErrJobNotFound is returned when a requested job is not defined in the project file.
	ErrJobNotFound = zerr.New("job not found")

	// ErrNoJobsSpecified is returned when no jobs are specified for the run command.
	ErrNoJobsSpecified = zerr.New("no jobs specified")

	// ErrJobFailed is returned when at least one job of a run fails.
	ErrJobFailed = zerr.New("job failed")

	// ErrReceiptWriteFailed is returned when a receipt cannot be written.
	ErrReceiptWriteFailed = zerr.New("failed to write receipt")

	// ErrReceiptReadFailed is returned when a receipt cannot be read.
	ErrReceiptReadFailed = zerr.New("failed to read receipt")

	// ErrWatchFailed is returned when the project tree cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch for changes")
)
