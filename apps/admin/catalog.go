package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/catalog"
	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
	"github.com/trezcool/campus/storage/static"
)

const interactiveHelp = `commands:
  set <dimension> <value>  select a filter value
  toggle <id>              show or hide the details of a record
  reset                    restore the default filters
  show                     print the catalog
  quit                     leave`

func (cli *commandLine) catalogCommand() *cobra.Command {
	var (
		filters     []string
		expand      []int
		interactive bool
		noColor     bool
	)
	cmd := &cobra.Command{
		Use:       "catalog students|products",
		Short:     "Browse a catalog",
		Example:   "  admin catalog students --filter year=Junior\n  admin catalog products -f category=Electronics -f maxPrice=100 --expand 1,3",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{student.CatalogName, product.CatalogName},
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			src, err := cli.catalogSource(args[0])
			if err != nil {
				return err
			}
			b, err := src.Open(cmd.Context())
			if err != nil {
				return err
			}

			criteria, err := parseFilters(filters)
			if err != nil {
				return err
			}
			if err = b.SetCriteria(criteria); err != nil {
				return err
			}
			for _, id := range expand {
				b.Toggle(id)
			}

			p := newViewPrinter(cli.out)
			if !interactive {
				p.print(b.View())
				return nil
			}
			return cli.browse(cmd.Context(), b, p)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&filters, "filter", "f", nil, "filter as dimension=value, repeatable")
	f.IntSliceVarP(&expand, "expand", "e", nil, "ids of the records to show in detail")
	f.BoolVarP(&interactive, "interactive", "i", false, "read commands from stdin")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func (cli *commandLine) catalogSource(name string) (catalog.Source, error) {
	switch name {
	case student.CatalogName:
		return student.NewCatalogSource(cli.stdSvc), nil
	case product.CatalogName:
		products, err := static.LoadProducts(appfs.FS)
		if err != nil {
			return nil, err
		}
		return product.NewCatalogSource(products, cli.conf.Catalog.MaxPrice), nil
	}
	return nil, core.NewArgumentError(fmt.Sprintf("unknown catalog %q", name))
}

func parseFilters(filters []string) (catalog.Criteria, error) {
	criteria := make(catalog.Criteria, len(filters))
	for _, f := range filters {
		dim, val, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(dim) == "" {
			return nil, core.NewArgumentError(fmt.Sprintf("invalid filter %q, expected dimension=value", f))
		}
		criteria[strings.TrimSpace(dim)] = val
	}
	return criteria, nil
}

// browse runs the interactive loop: every change of b is printed by its subscriber.
func (cli *commandLine) browse(ctx context.Context, b catalog.Browser, p *viewPrinter) error {
	b.Subscribe(p.print)
	p.print(b.View())
	fmt.Fprintln(cli.out, interactiveHelp)

	scanner := bufio.NewScanner(cli.in)
	for {
		fmt.Fprint(cli.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(cli.out)
			return errors.Wrap(scanner.Err(), "reading commands")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch cmd, args := fields[0], fields[1:]; cmd {
		case "set":
			if len(args) < 2 {
				p.warn("usage: set <dimension> <value>")
				continue
			}
			if err := b.SetCriteria(catalog.Criteria{args[0]: strings.Join(args[1:], " ")}); err != nil {
				p.warn(err.Error())
			}
		case "toggle":
			if len(args) != 1 {
				p.warn("usage: toggle <id>")
				continue
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				p.warn("invalid id " + args[0])
				continue
			}
			b.Toggle(id)
		case "reset":
			b.Reset()
		case "show":
			p.print(b.View())
		case "help":
			fmt.Fprintln(cli.out, interactiveHelp)
		case "quit", "exit":
			return nil
		default:
			p.warn("unknown command " + cmd)
		}
	}
}
