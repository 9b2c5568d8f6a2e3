package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-gum/dynmsg/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `
dynmsg - Decode JSON, YAML or HCL documents into protobuf messages at runtime.

Usage:
  dynmsg decode -descriptor SET -type NAME [options] [FILE]
  dynmsg describe -descriptor SET [-type NAME]

Arguments:
  SET
    Serialized FileDescriptorSet, e.g. from 'protoc --descriptor_set_out'.
  FILE
    Input document. Reads stdin if omitted or '-'.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	flagSet := flag.NewFlagSet("dynmsg", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageHeader)
		flagSet.PrintDefaults()
	}

	descriptorFlag := flagSet.String("descriptor", "", "Path to the serialized FileDescriptorSet.")
	typeFlag := flagSet.String("type", "", "Fully qualified message type name, e.g. 'fixture.MessageFixture'.")
	formatFlag := flagSet.String("format", app.FormatAuto, "Input format. Options: 'auto', 'json', 'yaml' or 'hcl'.")
	outputFlag := flagSet.String("output", app.OutputJSON, "Output format. Options: 'json' or 'text'.")
	jsonNamesFlag := flagSet.Bool("json-names", false, "Match input keys against the lowerCamelCase JSON names of the fields.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	command := args[0]
	switch command {
	case app.CommandDecode, app.CommandDescribe:
		args = args[1:]

	case "-h", "-help", "--help", "help":
		flagSet.Usage()
		return nil, true, nil

	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q: must be 'decode' or 'describe'", command)}
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", command)

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "at most one input file may be given"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:        command,
		DescriptorPath: *descriptorFlag,
		TypeName:       *typeFlag,
		InputPath:      flagSet.Arg(0),
		Format:         strings.ToLower(*formatFlag),
		Output:         strings.ToLower(*outputFlag),
		JSONNames:      *jsonNamesFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
