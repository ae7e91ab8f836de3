package internal

import (
	"fmt"
	"strings"

	"docusense/export"
	"docusense/repositories"

	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
)

const (
	InspectPort     = 8081
	InspectEndpoint = "/inspect"
	detailMaxLength = 80
)

// AnalysisMapper turns a stored analysis into a row of the Badger inspector.
// Unknown keys keep the default raw rendering.
func AnalysisMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !strings.HasPrefix(key, repositories.AnalysisPrefix) {
		return row
	}

	analysis, err := repositories.DecodeAnalysis(val)
	if err != nil {
		row.Detail = "Error: decoding failed"
		return row
	}
	return ToInspectRow(key, analysis)
}

func ToInspectRow(key string, analysis repositories.Analysis) database.InspectRow {
	return database.InspectRow{
		Key:       key,
		Type:      strings.ToUpper(string(analysis.SummaryType)),
		Timestamp: analysis.At.Format("2006-01-02 15:04:05"),
		EntityID:  shortID(analysis.ID.String()),
		Namespace: string(analysis.InputType),
		Detail:    truncate(firstLine(analysis.Result.Summary), detailMaxLength),
		Scores:    scores(analysis),
	}
}

func scores(analysis repositories.Analysis) string {
	parts := []string{fmt.Sprintf("quality:%d%%", export.QualityPercent(analysis.Result.QualityScore))}
	if sentiment := lo.FromPtr(analysis.Result.Sentiment); sentiment != "" {
		parts = append(parts, "sentiment:"+sentiment)
	}
	if tone := lo.FromPtr(analysis.Result.Tone); tone != "" {
		parts = append(parts, "tone:"+tone)
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
