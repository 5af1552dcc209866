package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"l14tables/pkg/css"
	"l14tables/pkg/layout"
)

func newBordersCmd(a *app) *cobra.Command {
	var painted bool

	cmd := &cobra.Command{
		Use:   "borders <input.html>",
		Short: "Print the resolved collapsed border of every cell edge.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.layoutFile(args[0], a.measurer())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "# table %d\n", i)
				if !t.IsCollapseBorders() {
					fmt.Fprintln(out, "# separate borders")
					continue
				}
				rows := edgeRows(t)
				if painted {
					rows = segmentRows(t)
				}
				if err := writeTable(out, rows); err != nil {
					return fmt.Errorf("table %d: %w", i, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&painted, "painted", false, "print the de-duplicated segments in paint order instead")
	return cmd
}

var sides = []css.Side{css.SideTop, css.SideRight, css.SideBottom, css.SideLeft}

func writeTable(w io.Writer, rows [][]string) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("row", "col", "side", "style", "width", "color", "precedence")
	for _, r := range rows {
		if err := tw.Append(r); err != nil {
			return err
		}
	}
	return tw.Render()
}

// edgeRows lists the four resolved edges of every cell.
func edgeRows(t *layout.Table) [][]string {
	var rows [][]string
	for _, c := range t.Cells() {
		for _, side := range sides {
			rows = append(rows, borderRow(c, side, c.CollapsedBorder(side)))
		}
	}
	return rows
}

// segmentRows lists the de-duplicated segments in paint order.
func segmentRows(t *layout.Table) [][]string {
	var rows [][]string
	for _, s := range t.CollapsedBordersInPaintOrder() {
		rows = append(rows, borderRow(s.Cell, s.Side, s.Value()))
	}
	return rows
}

func borderRow(c *layout.TableCell, side css.Side, v layout.CollapsedBorderValue) []string {
	row := []string{strconv.Itoa(c.AbsRow()), strconv.Itoa(c.Col()), side.String()}
	if !v.Exists() {
		return append(row, "-", "-", "-", "-")
	}
	return append(row, v.Style.String(), strconv.Itoa(v.Width), v.Color.String(), v.Precedence.String())
}
