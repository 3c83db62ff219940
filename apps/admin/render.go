package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/trezcool/campus/core/catalog"
)

type viewPrinter struct {
	w io.Writer

	title   *color.Color
	heading *color.Color
	label   *color.Color
	muted   *color.Color
	warning *color.Color
}

func newViewPrinter(w io.Writer) *viewPrinter {
	return &viewPrinter{
		w:       w,
		title:   color.New(color.FgCyan, color.Bold),
		heading: color.New(color.Bold),
		label:   color.New(color.FgBlue),
		muted:   color.New(color.Faint),
		warning: color.New(color.FgYellow),
	}
}

func (p *viewPrinter) print(view catalog.View) {
	p.title.Fprintln(p.w, view.Title)

	for _, f := range view.Filters {
		line := fmt.Sprintf("%s: %s", f.Label, f.Selected)
		if len(f.Options) > 0 {
			line += "  [" + strings.Join(f.Options, " | ") + "]"
		}
		p.muted.Fprintln(p.w, line)
	}

	sum := view.Summary
	stats := []string{fmt.Sprintf("Showing %d of %d", sum.VisibleCount, sum.TotalCount)}
	for _, avg := range sum.Averages {
		stats = append(stats, avg.Label+": "+avg.Display())
	}
	for _, cnt := range sum.Counts {
		stats = append(stats, fmt.Sprintf("%s: %d", cnt.Label, cnt.Value))
	}
	fmt.Fprintln(p.w, strings.Join(stats, " | "))
	fmt.Fprintln(p.w)

	if view.Empty {
		p.warning.Fprintln(p.w, view.EmptyMessage)
		return
	}
	for _, item := range view.Items {
		p.heading.Fprintf(p.w, "#%d %s\n", item.ID, item.Title)
		for _, fld := range item.Fields {
			p.label.Fprintf(p.w, "  %s: ", fld.Label)
			fmt.Fprintln(p.w, fld.Value)
		}
		for _, sec := range item.Details {
			p.label.Fprintf(p.w, "  %s\n", sec.Title)
			for _, line := range sec.Items {
				fmt.Fprintf(p.w, "    - %s\n", line)
			}
		}
		fmt.Fprintln(p.w)
	}
}

func (p *viewPrinter) warn(msg string) {
	p.warning.Fprintln(p.w, msg)
}
