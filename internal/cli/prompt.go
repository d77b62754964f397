// Package cli runs the interactive correction prompt on a terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/tokenizer"
	"github.com/gcbaptista/go-autocorrect/model"
)

// Corrector resolves words against named corpora
type Corrector interface {
	Correct(corpusName, word string, maxSuggestions int) (model.CorrectionResult, error)
}

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	word    lipgloss.Style
	prob    lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		word:    r.NewStyle().Bold(true),
		prob:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}),
		muted:   r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
		err:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
	}
}

// Prompt reads one word per line and prints ranked suggestions.
type Prompt struct {
	corrector      Corrector
	corpusName     string
	maxSuggestions int
	in             io.Reader
	out            io.Writer
	styles         styles
}

// NewPrompt creates a prompt over corpusName. maxSuggestions <= 0 uses the corpus default.
func NewPrompt(corrector Corrector, corpusName string, maxSuggestions int, in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		corrector:      corrector,
		corpusName:     corpusName,
		maxSuggestions: maxSuggestions,
		in:             in,
		out:            out,
		styles:         newStyles(out),
	}
}

// Run loops until EOF or a quit command. A clean EOF returns nil.
func (p *Prompt) Run() error {
	fmt.Fprintln(p.out, p.styles.success.Render("Dataset loaded successfully!"))
	fmt.Fprintln(p.out, p.styles.muted.Render("Enter a word to check (:q to quit)"))

	scanner := bufio.NewScanner(p.in)
	for {
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":q", ":quit", "exit":
			return nil
		}

		if err := p.handle(line); err != nil {
			return err
		}
	}
}

// handle corrects one input line. Invalid words are reported and the session goes on.
func (p *Prompt) handle(line string) error {
	word, err := tokenizer.CheckWord(line)
	var validationErr *autocorrectErrors.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintln(p.out, p.styles.err.Render(validationErr.Message))
		return nil
	}

	result, err := p.corrector.Correct(p.corpusName, word, p.maxSuggestions)
	if err != nil {
		fmt.Fprintln(p.out, p.styles.err.Render(err.Error()))
		return err
	}
	p.render(result)
	return nil
}

func (p *Prompt) render(result model.CorrectionResult) {
	if !result.HasSuggestions() {
		fmt.Fprintln(p.out, p.styles.muted.Render("No suggestions found."))
		return
	}

	fmt.Fprintln(p.out, p.styles.title.Render("Top Suggestions"))
	for _, c := range result.Candidates {
		fmt.Fprintf(p.out, "%s — %s\n",
			p.styles.word.Render(c.Word),
			p.styles.prob.Render("Probability: "+c.Display()),
		)
	}
}
