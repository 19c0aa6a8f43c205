package cli

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deltegui/pager/pagination"
)

type Line struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// fileLines serves the lines of a text file to a paginator. Pages are read
// lazily: only the lines of the requested page are kept in memory.
type fileLines struct {
	path string
	log  zerolog.Logger
}

func (f fileLines) count(*pagination.Pagination[Line]) (int, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	total := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		total++
	}
	return total, scanner.Err()
}

func (f fileLines) slice(offset, length int, p *pagination.Pagination[Line]) (pagination.Items[Line], error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	p.Meta["file"] = f.path
	f.log.Debug().
		Str("file", f.path).
		Int("offset", offset).
		Int("length", length).
		Msg("reading lines")
	return pagination.Lazy[Line](f.read(file, offset, length)), nil
}

func (f fileLines) read(file *os.File, offset, length int) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		number := 0
		for scanner.Scan() {
			number++
			if number <= offset {
				continue
			}
			if number > offset+length {
				return
			}
			if !yield(Line{Number: number, Text: scanner.Text()}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Line{}, fmt.Errorf("cannot read '%s': %w", f.path, err))
		}
	}
}

var linesTable = table[Line]{
	header: func([]Line) []string {
		return []string{"#", "LINE"}
	},
	row: func(_ []string, line Line) []string {
		return []string{strconv.Itoa(line.Number), line.Text}
	},
}

func newLinesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lines FILE",
		Short: "Paginate the lines of a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := fileLines{path: args[0], log: a.log}
			pg := newPaginator[Line](a)
			pg.SetItemTotalCallback(source.count)
			pg.SetSliceCallback(source.slice)
			result, err := pg.Paginate(a.opts.page)
			if err != nil {
				return fmt.Errorf("cannot paginate '%s': %w", args[0], err)
			}
			return render(cmd.OutOrStdout(), a, result, linesTable)
		},
	}
}
