// Package css checks pass-through stylesheets for syntax problems.
package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// maxIssues stops reporting on hopelessly broken input.
const maxIssues = 100

// Issue is a single problem found in a stylesheet.
type Issue struct {
	Line    int
	Column  int
	Message string
}

// Report summarizes a linted stylesheet.
type Report struct {
	Source       string
	Rules        int
	Declarations int
	AtRules      []string
	Issues       []Issue
}

func (r Report) issueString(i Issue) string {
	return fmt.Sprintf("%s:%d:%d: %s", r.Source, i.Line, i.Column, i.Message)
}

// Err returns all issues combined or nil when stylesheet is clean.
func (r Report) Err() error {
	var err error
	for _, i := range r.Issues {
		err = multierr.Append(err, errors.New(r.issueString(i)))
	}
	return err
}

// Linter parses stylesheets and reports problems. It keeps no state and may
// be used concurrently.
type Linter struct {
	log *zap.Logger
}

// NewLinter creates a new CSS linter.
func NewLinter(log *zap.Logger) *Linter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Linter{log: log.Named("css-lint")}
}

// Lint parses data, source names it in the report.
func (l *Linter) Lint(data []byte, source string) Report {
	rep := Report{Source: source}
	if len(bytes.TrimSpace(data)) == 0 {
		return rep
	}
	l.log.Debug("Linting CSS", zap.String("source", source), zap.Int("bytes", len(data)))

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	depth := 0
	for len(rep.Issues) < maxIssues {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				if depth > 0 {
					rep.Issues = append(rep.Issues, Issue{Message: "unexpected end of input, unclosed block"})
				}
				l.log.Debug("CSS linted", zap.String("source", source), zap.Int("rules", rep.Rules), zap.Int("issues", len(rep.Issues)))
				return rep
			}
			var perr *parse.Error
			if !errors.As(err, &perr) {
				rep.Issues = append(rep.Issues, Issue{Message: err.Error()})
				return rep
			}
			rep.Issues = append(rep.Issues, Issue{Line: perr.Line, Column: perr.Column, Message: perr.Message})

		case css.BeginAtRuleGrammar:
			depth++
			rep.AtRules = append(rep.AtRules, string(data))

		case css.AtRuleGrammar:
			rep.AtRules = append(rep.AtRules, string(data))

		case css.BeginRulesetGrammar:
			depth++
			rep.Rules++

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			rep.Declarations++
			if gt == css.DeclarationGrammar && valueIsEmpty(parser.Values()) {
				rep.Issues = append(rep.Issues, Issue{Message: fmt.Sprintf("empty value of %q", string(data))})
			}
		}
	}
	l.log.Debug("Too many CSS issues, giving up", zap.String("source", source))
	return rep
}

func valueIsEmpty(values []css.Token) bool {
	for _, v := range values {
		if v.TokenType != css.WhitespaceToken && strings.TrimSpace(string(v.Data)) != "" {
			return false
		}
	}
	return true
}
