package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/kballard/go-shellquote"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/filter"
	"github.com/haystack-go/hscore/logger"
	"github.com/haystack-go/hscore/zinc"
)

var (
	filterFromFlag  string
	filterStdinFlag bool
)

// FilterCmd parses a filter expression and runs it against a grid file,
// printing the matching rows as Zinc.
var FilterCmd = &cobra.Command{
	Use:   "filter EXPR FILE",
	Short: "Evaluate a filter expression against a grid file",
	Long: `Evaluate a filter expression against a grid file and print the
matching rows as Zinc.

With --stdin, EXPR is omitted and read line by line from standard input
instead. Each line is split the way a shell would and the tokens are
rejoined with single spaces; the shell quoting is consumed by the split,
so a double quote meant for a filter string literal has to be escaped
or wrapped in single quotes to reach the parser.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	FilterCmd.Flags().StringVar(&filterFromFlag, "from", "", "source codec: zinc, json, csv, trio (default: inferred from extension)")
	FilterCmd.Flags().BoolVar(&filterStdinFlag, "stdin", false, "read the filter expression from standard input instead of EXPR")
}

func runFilter(cmd *cobra.Command, args []string) error {
	var exprArgs []string
	var path string

	if filterStdinFlag {
		if len(args) != 1 {
			return errors.New("with --stdin, only FILE is expected")
		}
		path = args[0]
		expr, err := readQueryFromStdin()
		if err != nil {
			return err
		}
		exprArgs = []string{expr}
	} else {
		if len(args) < 2 {
			return errors.New("expected EXPR FILE")
		}
		exprArgs = args[:len(args)-1]
		path = args[len(args)-1]
	}

	exprString := strings.Join(exprArgs, " ")

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	codecName := filterFromFlag
	if codecName == "" {
		codecName = codecNameFromPath(path)
	}
	if codecName == "" {
		return errors.Newf("cannot infer codec from %q, pass --from", path)
	}

	g, err := decodeGrid(codecName, data)
	if err != nil {
		return errors.Wrap(err, "decode grid")
	}

	ast, err := filter.Parse(exprString)
	if err != nil {
		return errors.Wrap(err, "parse filter")
	}

	logger.FilterDebugw("evaluating filter", "filter_expr", exprString, "row_count", len(g.Rows))
	matched := filter.Eval(ast, g)

	for _, row := range matched {
		fmt.Printf("%s\n", zinc.EmitScalar(row, zinc.Ver3))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d rows matched\n", len(matched), len(g.Rows))
	return nil
}

// readQueryFromStdin reads query lines from stdin, re-tokenizing each with
// shell-quote rules and rejoining them into a single expression string.
func readQueryFromStdin() (string, error) {
	scanner := bufio.NewScanner(os.Stdin)
	var allArgs []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens, err := shellquote.Split(line)
		if err != nil {
			tokens = strings.Fields(line)
		}
		allArgs = append(allArgs, tokens...)
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrap(err, "read filter expression from stdin")
	}
	return strings.Join(allArgs, " "), nil
}
