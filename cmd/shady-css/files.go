package main

import (
	"fmt"
	"io"
	"os"

	"bennypowers.dev/shadycss/internal/astdump"
	"bennypowers.dev/shadycss/internal/config"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/mixin"
	"bennypowers.dev/shadycss/parser"
	"bennypowers.dev/shadycss/stringifier"
	"github.com/bmatcuk/doublestar/v4"
)

const stdinName = "-"

// expand resolves globs to files. Files matched by a glob are filtered by the
// config's include and exclude patterns; files named outright are kept.
func expand(inputs []string, cfg config.Config) ([]string, error) {
	if len(inputs) == 0 {
		return []string{stdinName}, nil
	}

	var files []string
	for _, input := range inputs {
		if input == stdinName || !hasMeta(input) {
			files = append(files, input)
			continue
		}
		if !doublestar.ValidatePattern(input) {
			return nil, fmt.Errorf("invalid glob pattern %q", input)
		}
		matches, err := doublestar.FilepathGlob(input, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", input, err)
		}
		if len(matches) == 0 {
			log.Warn("No files match %s", input)
		}
		for _, match := range matches {
			if cfg.Selects(match) {
				files = append(files, match)
			} else {
				log.Debug("Skipping %s", match)
			}
		}
	}
	return files, nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func read(file string, stdin io.Reader) (string, error) {
	if file == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}

// render prints src in the configured format. Tree dumps show the desugared
// stylesheet when mixins are applied.
func render(src string, cfg config.Config) (string, error) {
	if cfg.ApplyMixins {
		src = mixin.Transform(src)
		if cfg.Format == config.FormatCSS {
			return src + "\n", nil
		}
	}

	sheet := parser.Parse(src)
	switch cfg.Format {
	case config.FormatYAML:
		out, err := astdump.YAML(sheet)
		return string(out), err
	case config.FormatJSON:
		out, err := astdump.JSON(sheet)
		return string(out), err
	default:
		return stringifier.String(sheet) + "\n", nil
	}
}
