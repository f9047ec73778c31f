package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"rcgate/pkg/birthnumber"
)

type record struct {
	Input       string `json:"input"`
	Valid       bool   `json:"valid"`
	Normalized  string `json:"normalized,omitempty"`
	Formatted   string `json:"formatted,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Sex         string `json:"sex,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func newRecord(input string, bn birthnumber.BirthNumber, reason birthnumber.Reason, sep string, explain bool) record {
	rec := record{Input: input, Valid: reason == birthnumber.ReasonValid}
	if !rec.Valid {
		if explain {
			rec.Reason = reason.Description()
		}
		return rec
	}
	rec.Normalized = bn.Normalized()
	rec.Formatted = bn.Format(sep)
	rec.DateOfBirth = bn.DateOfBirth().Format("2006-01-02")
	rec.Sex = bn.Sex().String()
	return rec
}

func (r record) status() string {
	switch {
	case r.Valid:
		return "valid"
	case r.Reason != "":
		return "invalid: " + r.Reason
	default:
		return "invalid"
	}
}

func write(w io.Writer, format string, records []record) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "plain":
		return writePlain(w, records)
	default:
		return writeTable(w, records)
	}
}

func writePlain(w io.Writer, records []record) error {
	for _, r := range records {
		line := r.Formatted
		if !r.Valid {
			line = fmt.Sprintf("%s\t%s", r.Input, r.status())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, records []record) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(config *tablewriter.Config) {
		config.Row.Formatting.AutoWrap = tw.WrapNone
	})

	table.Header([]string{"INPUT", "FORMATTED", "DATE OF BIRTH", "SEX", "STATUS"})
	for _, r := range records {
		if err := table.Append([]string{r.Input, r.Formatted, r.DateOfBirth, r.Sex, r.status()}); err != nil {
			return err
		}
	}
	return table.Render()
}
