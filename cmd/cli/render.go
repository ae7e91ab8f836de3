package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"docusense/domain"
	"docusense/export"
	"docusense/infrastructure/http/server"
	"docusense/internal"
	"docusense/repositories"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type Scanner interface {
	Scan(visit func(key string, analysis repositories.Analysis) error) error
}

type Printer struct {
	out     io.Writer
	colours bool
	json    bool
}

func NewPrinter(out io.Writer, colours, jsonOutput bool) *Printer {
	return &Printer{out: out, colours: colours, json: jsonOutput}
}

func (p *Printer) AnalyzeResponse(response server.AnalyzeResponse) error {
	if p.json {
		return p.printJSON(response)
	}
	if response.Status == domain.StatusError || response.Result == nil {
		fmt.Fprintln(p.out, p.paint(response.Message, color.FgRed))
		return nil
	}
	fmt.Fprintln(p.out, p.paint(response.Message, color.FgGreen))
	if response.ID != "" {
		fmt.Fprintf(p.out, "ID: %s\n", response.ID)
	}
	fmt.Fprintln(p.out)
	p.result(*response.Result)
	return nil
}

func (p *Printer) Analysis(view server.AnalysisView) error {
	if p.json {
		return p.printJSON(view)
	}
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf("  ====== %s ======", view.ID), color.BgBlack, color.FgGreen))
	fmt.Fprintf(p.out, "At: %s  Type: %s  Input: %s\n", view.At.Format("2006-01-02 15:04:05"), view.SummaryType, view.InputType)
	if view.FileName != "" {
		fmt.Fprintf(p.out, "File: %s\n", view.FileName)
	}
	fmt.Fprintln(p.out)
	p.result(view.Result)
	return nil
}

func (p *Printer) result(result domain.AnalysisResult) {
	// The markdown export is already the canonical human rendering.
	rendered, err := export.Render(export.FormatMarkdown, result)
	if err != nil {
		fmt.Fprintln(p.out, result.Summary)
		return
	}
	fmt.Fprintln(p.out, rendered)
}

func (p *Printer) Search(response server.SearchResponse) error {
	if p.json {
		return p.printJSON(response)
	}
	if len(response.Items) == 0 {
		fmt.Fprintln(p.out, p.paint("No analysis found.", color.FgYellow))
		return nil
	}
	table := p.table([]string{"ID", "At", "Type", "Quality", "Sentiment", "Summary"})
	for _, item := range response.Items {
		table.Append([]string{
			item.ID,
			item.At.Format("2006-01-02 15:04"),
			item.SummaryType,
			fmt.Sprintf("%d%%", export.QualityPercent(item.Result.QualityScore)),
			lo.FromPtr(item.Result.Sentiment),
			headline(item.Result.Summary),
		})
	}
	table.Render()
	if response.NextCursor != nil {
		fmt.Fprintf(p.out, "\nNext page: --cursor %s\n", *response.NextCursor)
	}
	return nil
}

func (p *Printer) Inspect(scanner Scanner) error {
	var rows [][]string
	err := scanner.Scan(func(key string, analysis repositories.Analysis) error {
		row := internal.ToInspectRow(key, analysis)
		rows = append(rows, []string{row.Key, row.Type, row.Timestamp, row.EntityID, row.Namespace, row.Detail, row.Scores})
		return nil
	})
	if err != nil {
		return err
	}
	table := p.table([]string{"Key", "Type", "Timestamp", "Entity ID", "Input", "Detail", "Scores"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func (p *Printer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (p *Printer) paint(text string, colors ...color.Color) string {
	if !p.colours {
		return text
	}
	return color.New(colors...).Render(text)
}

func (p *Printer) printJSON(v any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func headline(summary string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(summary), "\n")
	line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
	if runes := []rune(line); len(runes) > 60 {
		return string(runes[:59]) + "…"
	}
	return line
}
