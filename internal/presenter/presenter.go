// Package presenter выводит результаты запросов таблицей.
package presenter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table - заголовки и строки для вывода
type Table struct {
	Headers []string
	Rows    [][]string
}

// Presenter выводит таблицу результатов
type Presenter interface {
	Render(t Table)
}

type tablePresenter struct {
	out io.Writer
}

// New создаёт Presenter, пишущий в out
func New(out io.Writer) Presenter {
	return &tablePresenter{out: out}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (p *tablePresenter) Render(t Table) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(p.out, tbl.Render())
}
