package ingest

import (
	"regexp"
	"strings"
)

const DefaultMaxStepLen = 400

// StepOptions configures directions splitting.
type StepOptions struct {
	// MaxStepLen is the length above which a step is split on sentence
	// boundaries.
	MaxStepLen int
}

// DefaultStepOptions returns default splitting options.
func DefaultStepOptions() StepOptions {
	return StepOptions{MaxStepLen: DefaultMaxStepLen}
}

var stepNumber = regexp.MustCompile(`^(?i)(step\s*)?\d+\s*[.):]\s*`)

// SplitDirections breaks a free-text directions blob into ordered steps.
// Every non-empty line is a step with any leading "1." or "Step 2:" numbering
// removed. Oversized steps are split on sentence boundaries.
func SplitDirections(text string, opts StepOptions) []string {
	if opts.MaxStepLen == 0 {
		opts = DefaultStepOptions()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(stepNumber.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		if len(line) > opts.MaxStepLen {
			steps = append(steps, splitSentences(line, opts.MaxStepLen)...)
			continue
		}
		steps = append(steps, line)
	}
	return steps
}

// splitSentences packs sentences into pieces no longer than max where
// possible. A single sentence longer than max is kept whole.
func splitSentences(text string, max int) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' && text[i] != '!' && text[i] != '?' {
			continue
		}
		if i+1 == len(text) || text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(text[start:i+1]))
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	var out []string
	var current string
	for _, s := range sentences {
		if current == "" {
			current = s
			continue
		}
		if len(current)+1+len(s) > max {
			out = append(out, current)
			current = s
			continue
		}
		current += " " + s
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
