package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deltegui/pager/pagination"
)

const tabPadding = 2

// table describes how the items of a page are drawn as rows.
type table[T any] struct {
	header func(items []T) []string
	row    func(header []string, item T) []string
}

func render[T any](w io.Writer, a *app, p *pagination.Pagination[T], t table[T]) error {
	switch a.opts.output {
	case OutputJson:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(p)
	case OutputYaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(p); err != nil {
			return err
		}
		return encoder.Close()
	default:
		loc, err := a.localizer()
		if err != nil {
			return err
		}
		if err := renderTable(w, p, t); err != nil {
			return err
		}
		return renderFooter(w, pagination.ToVM(p, loc))
	}
}

func renderTable[T any](w io.Writer, p *pagination.Pagination[T], t table[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	header := t.header(p.Items)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, item := range p.All() {
		fmt.Fprintln(tw, strings.Join(t.row(header, item), "\t"))
	}
	return tw.Flush()
}

func renderFooter(w io.Writer, vm pagination.ViewModel) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", vm.GetMessageOfElements()); err != nil {
		return err
	}
	if !vm.Show {
		return nil
	}
	var bar []string
	if vm.ShowPreviousButton {
		bar = append(bar, vm.GetFirstTag(), "« "+vm.GetPreviousTag())
	}
	for _, page := range vm.Sequence {
		if page == vm.CurrentPage {
			bar = append(bar, "["+strconv.Itoa(page)+"]")
		} else {
			bar = append(bar, strconv.Itoa(page))
		}
	}
	if vm.ShowNextButton {
		bar = append(bar, vm.GetNextTag()+" »", vm.GetLastTag())
	}
	_, err := fmt.Fprintln(w, strings.Join(bar, " "))
	return err
}
