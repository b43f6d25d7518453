/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package output prints command results as tables on a terminal and as
// tab separated lines otherwise.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

type Printer struct {
	out    io.Writer
	pretty bool
}

func New(out io.Writer) *Printer {
	return &Printer{out: out, pretty: isTerminal(out)}
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) Table(headers []string, rows [][]string) {
	if !p.pretty {
		fmt.Fprintln(p.out, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(p.out, strings.Join(row, "\t"))
		}
		return
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	fmt.Fprintln(p.out, tw.Render())
}

func (p *Printer) Lines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

// Result prints one key per row, a disabled result is a single row
func (p *Printer) Result(result *rfdc.Result) {
	if result.Disabled {
		p.Table([]string{"KEY", "VALUE"}, [][]string{{"", rfdc.Disabled}})
		return
	}
	var rows [][]string
	for _, key := range result.Keys() {
		rows = append(rows, []string{key, fmt.Sprintf("%v", result.Values[key])})
	}
	p.Table([]string{"KEY", "VALUE"}, rows)
}
