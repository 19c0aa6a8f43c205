package pagination

import (
	"fmt"

	"github.com/deltegui/pager/localizer"
)

// ViewModel is what a page link bar needs to be drawn.
type ViewModel struct {
	StartElement       int   `json:"start_element" yaml:"start_element"`
	LastElement        int   `json:"last_element" yaml:"last_element"`
	TotalElements      int   `json:"total_elements" yaml:"total_elements"`
	Sequence           []int `json:"sequence" yaml:"sequence"`
	PreviousPage       int   `json:"previous_page" yaml:"previous_page"`
	CurrentPage        int   `json:"current_page" yaml:"current_page"`
	NextPage           int   `json:"next_page" yaml:"next_page"`
	LastPage           int   `json:"last_page" yaml:"last_page"`
	Show               bool  `json:"show" yaml:"show"`
	ShowPreviousButton bool  `json:"show_previous_button" yaml:"show_previous_button"`
	ShowNextButton     bool  `json:"show_next_button" yaml:"show_next_button"`
	loc                localizer.Localizer
}

func (vm ViewModel) GetMessageOfElements() string {
	return fmt.Sprintf(
		vm.loc.Get("PaginationMessageOfElements"),
		vm.StartElement,
		vm.LastElement,
		vm.TotalElements)
}

func (vm ViewModel) GetNextTag() string {
	return vm.loc.Get("PaginationNextButton")
}

func (vm ViewModel) GetPreviousTag() string {
	return vm.loc.Get("PaginationPreviousButton")
}

func (vm ViewModel) GetFirstTag() string {
	return vm.loc.Get("PaginationFirstButton")
}

func (vm ViewModel) GetLastTag() string {
	return vm.loc.Get("PaginationLastButton")
}

func ToVM[T any](p *Pagination[T], loc localizer.Localizer) ViewModel {
	startElement := 0
	lastElement := 0
	if len(p.Items) > 0 {
		offset := 0
		if p.ItemsPerPage > 0 {
			offset = (p.CurrentPageNumber - 1) * p.ItemsPerPage
		}
		startElement = offset + 1
		lastElement = offset + len(p.Items)
	}
	previous, hasPrevious := p.Previous()
	next, hasNext := p.Next()
	return ViewModel{
		StartElement:       startElement,
		LastElement:        lastElement,
		TotalElements:      p.TotalNumberOfItems,
		Sequence:           p.Pages,
		PreviousPage:       previous,
		CurrentPage:        p.CurrentPageNumber,
		NextPage:           next,
		LastPage:           p.LastPageNumber,
		Show:               p.TotalNumberOfPages > 1,
		ShowPreviousButton: hasPrevious,
		ShowNextButton:     hasNext,
		loc:                loc,
	}
}
