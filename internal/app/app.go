package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"

	"github.com/go-gum/dynmsg"
)

// App encapsulates the tool's dependencies and configuration.
type App struct {
	outW   io.Writer
	stdin  io.Reader
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the tool. Results are written to outW,
// log records to logW. stdin is read if the config names no input file.
func NewApp(outW, logW io.Writer, stdin io.Reader, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		stdin:  stdin,
		logger: logger,
		config: config,
	}
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	data, err := os.ReadFile(a.config.DescriptorPath)
	if err != nil {
		return fmt.Errorf("read descriptor set: %w", err)
	}

	registry, err := dynmsg.LoadRegistry(data)
	if err != nil {
		return fmt.Errorf("load descriptor set %q: %w", a.config.DescriptorPath, err)
	}

	a.logger.Debug("Descriptor set loaded.", "files", registry.Files(), "messages", len(registry.Messages()))

	switch a.config.Command {
	case CommandDescribe:
		return a.describe(registry)
	default:
		return a.decode(ctx, registry)
	}
}

func (a *App) describe(registry *dynmsg.Registry) error {
	names := registry.Messages()
	if a.config.TypeName != "" {
		names = []string{a.config.TypeName}
	}

	for _, name := range names {
		md, err := registry.Resolve(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.outW, "%s\n", md.FullName())
		for _, info := range dynmsg.Describe(md) {
			fmt.Fprintf(a.outW, "  %s\n", info)
		}
	}

	return nil
}

func (a *App) decode(ctx context.Context, registry *dynmsg.Registry) error {
	decoder := dynmsg.NewDecoder(registry).WithLogger(a.logger)
	if a.config.JSONNames {
		decoder = decoder.WithJSONNames()
	}

	decode, err := decoder.UnmarshalerOf(a.config.TypeName)
	if err != nil {
		return err
	}

	values, err := a.readInput()
	if err != nil {
		return err
	}

	a.logger.Debug("Input parsed.", "format", a.config.inputFormat(), "documents", len(values))

	for idx, value := range values {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := decode(value)
		if err != nil {
			return fmt.Errorf("decode document idx=%d into %q: %w", idx, a.config.TypeName, err)
		}

		if err := a.print(msg); err != nil {
			return err
		}
	}

	a.logger.Info("Decoding finished.", "type", a.config.TypeName, "documents", len(values))

	return nil
}

func (a *App) print(msg proto.Message) error {
	var (
		out []byte
		err error
	)

	switch a.config.Output {
	case OutputText:
		out, err = prototext.MarshalOptions{Multiline: true}.Marshal(msg)
	default:
		out, err = protojson.MarshalOptions{Multiline: true, UseProtoNames: !a.config.JSONNames}.Marshal(msg)
	}

	if err != nil {
		return fmt.Errorf("print message: %w", err)
	}

	if _, err := a.outW.Write(out); err != nil {
		return err
	}

	_, err = io.WriteString(a.outW, "\n")
	return err
}
