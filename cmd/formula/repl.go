package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/danielgtaylor/formula"
	"github.com/danielgtaylor/formula/internal/records"
	"github.com/lmorg/readline"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var replFlags struct {
	data string
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate formulas interactively",
	Long: `Start an interactive prompt. Each line is evaluated against every row of
the dataset, or once with no attributes when --data is not given. Attribute
and builtin names complete with tab. Type :ast FORMULA to show how a formula
parses and :quit or Ctrl+D to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := loadRows(replFlags.data)
		if err != nil {
			return err
		}
		session := newSession(rows)

		rl := readline.NewInstance()
		rl.SetPrompt("formula> ")
		rl.TabCompleter = session.complete

		out := cmd.OutOrStdout()
		for {
			line, err := rl.Readline()
			if err != nil {
				return nil
			}
			if !session.handle(out, line) {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replFlags.data, "data", "d", "", "dataset file (.json, .yaml, .csv)")
}

// session holds the dataset and completion candidates of a repl.
type session struct {
	rows  []records.Record
	names []string
}

func newSession(rows []records.Record) *session {
	names := records.Attributes(rows)
	for name := range formula.DefaultBuiltins {
		names = append(names, name)
	}
	slices.Sort(names)
	return &session{rows: rows, names: slices.Compact(names)}
}

// handle evaluates one line of input and reports whether to keep going.
func (s *session) handle(w io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case line == ":quit" || line == ":q":
		return false
	case strings.HasPrefix(line, ":ast "):
		source := strings.TrimSpace(strings.TrimPrefix(line, ":ast "))
		ast, err := formula.Compile(source)
		if err != nil {
			fmt.Fprintln(w, errorColor.Sprint(err.Pretty(source)))
			return true
		}
		fmt.Fprintln(w, ast)
		return true
	}

	values, err := formula.EvaluateRecords(line, s.rows, formula.WithLogger(slog.Default()))
	if err != nil {
		fmt.Fprintln(w, errorColor.Sprint(err.Pretty(line)))
		return true
	}
	if len(values) == 1 {
		fmt.Fprintln(w, values[0].Repr())
		return true
	}
	if err := writeValues(w, "text", values); err != nil {
		fmt.Fprintln(w, errorColor.Sprint(err))
	}
	return true
}

// complete suggests attribute and builtin names for the word under the
// cursor.
func (s *session) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])

	var suggestions []string
	for _, name := range s.names {
		if strings.HasPrefix(name, word) {
			suggestions = append(suggestions, name[len(word):])
		}
	}
	return word, suggestions, nil, readline.TabDisplayGrid
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
