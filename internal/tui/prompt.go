// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrPromptCancelled is returned when the user backs out of a prompt
// without choosing a value.
var ErrPromptCancelled = errors.New("prompt cancelled")

type SelectOption struct {
	Label string
	Value string
}

func PromptInput(in io.Reader, out io.Writer, title, description, placeholder string, validate func(string) error) (string, error) {
	return PromptInputWithDefault(in, out, title, description, placeholder, "", validate)
}

func PromptInputWithDefault(in io.Reader, out io.Writer, title, description, placeholder, defaultValue string, validate func(string) error) (string, error) {
	if useFormPrompts(in, out) {
		value := defaultValue
		input := huh.NewInput().
			Title(title).
			Description(description).
			Placeholder(placeholder).
			Prompt("> ").
			Value(&value)
		if validate != nil {
			input = input.Validate(validate)
		}
		form := huh.NewForm(huh.NewGroup(input))
		form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrPromptCancelled
			}
			return "", err
		}
		return strings.TrimSpace(value), nil
	}
	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description, placeholder)
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			return "", ErrPromptCancelled
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" && defaultValue != "" {
			line = defaultValue
		}
		if validate != nil {
			if err := validate(line); err != nil {
				fmt.Fprintln(out, err.Error())
				continue
			}
		}
		return strings.TrimSpace(line), nil
	}
}

func PromptConfirm(in io.Reader, out io.Writer, title, description string) (bool, error) {
	if useFormPrompts(in, out) {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Description(description).
					Value(&confirmed),
			),
		)
		form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return confirmed, nil
	}
	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description, "")
	for {
		fmt.Fprint(out, "Confirm [y/N]: ")
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		value, ok := parseYesNo(line)
		if !ok {
			fmt.Fprintln(out, "Please enter y or n.")
			continue
		}
		return value, nil
	}
}

func PromptSelect(in io.Reader, out io.Writer, title, description string, options []SelectOption, defaultValue string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options available")
	}
	if useFormPrompts(in, out) {
		choice := defaultValue
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(title).
					Description(description).
					Options(selectOptions(options)...).
					Value(&choice),
			),
		)
		form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrPromptCancelled
			}
			return "", err
		}
		return choice, nil
	}
	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description, "")
	for i, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		marker := " "
		if opt.Value == defaultValue {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %d) %s\n", marker, i+1, label)
	}
	for {
		fmt.Fprint(out, "Select option: ")
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			return "", ErrPromptCancelled
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" && defaultValue != "" {
			return defaultValue, nil
		}
		indices, err := parseSelectionIndices(line, len(options))
		if err != nil || len(indices) != 1 {
			fmt.Fprintln(out, "Please select one option by number.")
			continue
		}
		return options[indices[0]].Value, nil
	}
}

func PromptMultiSelect(in io.Reader, out io.Writer, title, description string, options []SelectOption, selected []string) ([]string, error) {
	if len(options) == 0 {
		return nil, errors.New("no options available")
	}
	if useFormPrompts(in, out) {
		choices := append([]string(nil), selected...)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title(title).
					Description(description).
					Options(multiSelectOptions(options, selected)...).
					Value(&choices),
			),
		)
		form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrPromptCancelled
			}
			return nil, err
		}
		return choices, nil
	}
	selectedSet := map[string]bool{}
	for _, value := range selected {
		selectedSet[value] = true
	}
	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description, "")
	for i, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		marker := " "
		if selectedSet[opt.Value] {
			marker = "x"
		}
		fmt.Fprintf(out, "[%s] %d) %s\n", marker, i+1, label)
	}
	for {
		fmt.Fprint(out, "Select options (comma-separated, blank to keep current): ")
		line, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			return nil, ErrPromptCancelled
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return selected, nil
		}
		indices, err := parseSelectionIndices(line, len(options))
		if err != nil {
			fmt.Fprintln(out, "Please select valid option numbers.")
			continue
		}
		next := make([]string, 0, len(indices))
		for _, idx := range indices {
			next = append(next, options[idx].Value)
		}
		return next, nil
	}
}

// PromptFile picks an existing data file. The form path browses from
// dir; the plain path reads a path and validates it against extensions.
func PromptFile(in io.Reader, out io.Writer, title, description, dir string, extensions []string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if useFormPrompts(in, out) {
		path := ""
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewFilePicker().
					Title(title).
					Description(description).
					CurrentDirectory(dir).
					AllowedTypes(extensions).
					Value(&path),
			),
		)
		form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrPromptCancelled
			}
			return "", err
		}
		if strings.TrimSpace(path) == "" {
			return "", ErrPromptCancelled
		}
		return path, nil
	}
	value, err := PromptInput(in, out, title, description, "Enter a file path, blank to cancel.", func(value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return validateDataPath(value, extensions)
	})
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", ErrPromptCancelled
	}
	return value, nil
}

func validateDataPath(value string, extensions []string) error {
	path := strings.TrimSpace(value)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if len(extensions) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type %s", ext)
}

func selectOptions(options []SelectOption) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		opts = append(opts, huh.NewOption(label, opt.Value))
	}
	return opts
}

func multiSelectOptions(options []SelectOption, selected []string) []huh.Option[string] {
	selectedSet := map[string]bool{}
	for _, value := range selected {
		selectedSet[value] = true
	}
	opts := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		option := huh.NewOption(label, opt.Value)
		if selectedSet[opt.Value] {
			option = option.Selected(true)
		}
		opts = append(opts, option)
	}
	return opts
}

func promptTheme() *huh.Theme {
	return huh.ThemeCharm()
}

func useFormPrompts(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(inFile.Fd())) {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return false
	}
	return true
}

func printPromptHeader(out io.Writer, title, description, placeholder string) {
	if strings.TrimSpace(title) != "" {
		fmt.Fprintln(out, title)
	}
	if strings.TrimSpace(description) != "" {
		fmt.Fprintln(out, description)
	}
	if strings.TrimSpace(placeholder) != "" {
		fmt.Fprintln(out, placeholder)
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
