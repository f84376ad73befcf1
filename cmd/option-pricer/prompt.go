package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Prompter wraps an input scanner and output writer for interactive prompts.
// Inject a custom reader/writer for tests.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter using stdin/stdout.
func NewPrompter() *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// NewPrompterFromReader creates a Prompter with custom reader/writer (for tests).
func NewPrompterFromReader(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(r),
		out:     w,
	}
}

// String prompts for a string value. Returns defaultVal on empty input.
func (p *Prompter) String(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}
	if !p.scanner.Scan() {
		return defaultVal
	}
	input := strings.TrimSpace(p.scanner.Text())
	if input == "" {
		return defaultVal
	}
	return input
}

// Float prompts for a float value. Re-prompts on unparsable input.
func (p *Prompter) Float(prompt string, defaultVal float64) float64 {
	for {
		input := p.String(prompt, strconv.FormatFloat(defaultVal, 'g', -1, 64))
		v, err := strconv.ParseFloat(input, 64)
		if err == nil {
			return v
		}
		fmt.Fprintf(p.out, "  Invalid number %q, try again.\n", input)
	}
}

// Int prompts for an integer value. Re-prompts on unparsable input.
func (p *Prompter) Int(prompt string, defaultVal int) int {
	for {
		input := p.String(prompt, strconv.Itoa(defaultVal))
		v, err := strconv.Atoi(input)
		if err == nil {
			return v
		}
		fmt.Fprintf(p.out, "  Invalid integer %q, try again.\n", input)
	}
}

// YesNo prompts for a yes/no answer. Returns defaultYes on empty input.
func (p *Prompter) YesNo(prompt string, defaultYes bool) bool {
	def := "y/N"
	if defaultYes {
		def = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", prompt, def)
	if !p.scanner.Scan() {
		return defaultYes
	}
	input := strings.TrimSpace(strings.ToLower(p.scanner.Text()))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// Date prompts for a YYYY-MM-DD date. Re-prompts on unparsable input.
func (p *Prompter) Date(prompt string, defaultVal time.Time) time.Time {
	for {
		input := p.String(prompt, defaultVal.Format("2006-01-02"))
		d, err := time.Parse("2006-01-02", input)
		if err == nil {
			return d
		}
		fmt.Fprintf(p.out, "  Invalid date %q (want YYYY-MM-DD), try again.\n", input)
	}
}

// Choice prompts the user to pick one option from a numbered list.
// Returns the 0-based index of the selection.
func (p *Prompter) Choice(prompt string, options []string, defaultIdx int) int {
	fmt.Fprintln(p.out, prompt)
	for i, opt := range options {
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(p.out, "  %s%d) %s\n", marker, i+1, opt)
	}
	for {
		fmt.Fprintf(p.out, "Enter choice [%d]: ", defaultIdx+1)
		if !p.scanner.Scan() {
			return defaultIdx
		}
		input := strings.TrimSpace(p.scanner.Text())
		if input == "" {
			return defaultIdx
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1
		}
		fmt.Fprintln(p.out, "  Invalid choice, try again.")
	}
}
