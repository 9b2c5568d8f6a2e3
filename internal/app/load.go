package app

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gum/dynmsg"
	"github.com/go-gum/dynmsg/source/hclsource"
	"github.com/go-gum/dynmsg/source/jsonsource"
	"github.com/go-gum/dynmsg/source/yamlsource"
)

// readInput parses all documents of the input. JSON and YAML streams may hold
// more than one document, an HCL file is always a single document.
// An input without any document is an error.
func (a *App) readInput() ([]dynmsg.Value, error) {
	values, name, err := a.parseInput()
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no document in %s: %w", name, io.ErrUnexpectedEOF)
	}

	return values, nil
}

func (a *App) parseInput() ([]dynmsg.Value, string, error) {
	r := a.stdin
	name := "<stdin>"

	if path := a.config.InputPath; path != "" && path != "-" {
		fp, err := os.Open(path)
		if err != nil {
			return nil, name, fmt.Errorf("open input: %w", err)
		}
		defer fp.Close()

		r, name = fp, path
	}

	switch a.config.inputFormat() {
	case FormatYAML:
		values, err := yamlsource.NewReader(r).ReadAll()
		if err != nil {
			return nil, name, fmt.Errorf("parse yaml %s: %w", name, err)
		}
		return values, name, nil

	case FormatHCL:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, name, fmt.Errorf("read %s: %w", name, err)
		}

		value, err := hclsource.Parse(src, name)
		if err != nil {
			return nil, name, fmt.Errorf("parse hcl %s: %w", name, err)
		}
		return []dynmsg.Value{value}, name, nil

	default:
		values, err := jsonsource.NewReader(r).ReadAll()
		if err != nil {
			return nil, name, fmt.Errorf("parse json %s: %w", name, err)
		}
		return values, name, nil
	}
}
