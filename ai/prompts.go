package ai

import (
	"maps"
	"slices"
	"strings"
	"text/template"
)

var quickSummaryTemplate = template.Must(template.New("quickSummaryPrompt").Parse(
	`You are an expert summarizer. Please provide a concise, bullet-point summary of the following document. Focus on the key ideas and main points.

Document:
{{.DocumentContent}}`))

var deepSummaryTemplate = template.Must(template.New("deepSummaryPrompt").Parse(
	`You are an expert summarizer with a deep understanding of language and sentiment.

Your task is to provide a detailed, paragraph-style summary of the following document content, along with an analysis of its overall sentiment and tone.

Document Content: {{.DocumentContent}}

Summary Instructions:
- The summary should be comprehensive and capture the main ideas of the document.
- The sentiment analysis should accurately reflect the overall emotional tone of the document (positive, negative, or neutral).
- The tone analysis should identify the specific tone used in the document (e.g., formal, informal, optimistic, pessimistic).

Format your response as a JSON object with the following keys:
- summary: The paragraph-style summary of the document.
- sentiment: The overall sentiment of the document (positive, negative, or neutral).
- tone: The tone of the document (e.g., formal, informal, optimistic, pessimistic).`))

var qualityScoringTemplate = template.Must(template.New("summaryQualityScoringPrompt").Parse(
	`You are an expert in evaluating the quality of summaries. You will receive a summary and the original document.

You will evaluate the summary based on the following criteria:
* Length: Is the summary an appropriate length given the length of the original document?
* Clarity: Is the summary easy to understand?
* Tone: Does the summary accurately reflect the tone of the original document?

Based on these criteria, you will assign a quality score between 0 and 1 (inclusive), with 1 being the highest possible score. You will also provide a detailed justification for the score.

Original Document: {{.OriginalDocument}}

Summary: {{.Summary}}

Quality Score:`))

func QuickSummaryPrompt(document string) (Prompt, error) {
	text, err := render(quickSummaryTemplate, map[string]string{"DocumentContent": document})
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Name:        "quick_summary",
		Instruction: text,
		Schema: object(map[string]any{
			"summary": field("string", "A bullet-point summary of the key ideas in the document."),
		}),
	}, nil
}

func DeepSummaryPrompt(document string) (Prompt, error) {
	text, err := render(deepSummaryTemplate, map[string]string{"DocumentContent": document})
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Name:        "deep_summary",
		Instruction: text,
		Schema: object(map[string]any{
			"summary":   field("string", "A detailed, paragraph-style summary of the document."),
			"sentiment": field("string", "The overall sentiment of the document (positive, negative, or neutral)."),
			"tone":      field("string", "The tone of the document (e.g., formal, informal, optimistic, pessimistic)."),
		}),
	}, nil
}

func QualityScoringPrompt(summary, original string) (Prompt, error) {
	text, err := render(qualityScoringTemplate, map[string]string{
		"Summary":          summary,
		"OriginalDocument": original,
	})
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Name:        "summary_quality_scoring",
		Instruction: text,
		Schema: object(map[string]any{
			"qualityScore":  field("number", "A score between 0 and 1 (inclusive) representing the quality of the summary. Higher scores indicate better quality."),
			"justification": field("string", "A detailed explanation of why the summary received the given quality score."),
		}),
	}, nil
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func field(kind, description string) map[string]any {
	return map[string]any{"type": kind, "description": description}
}

// object builds a strict schema where every property is required.
func object(properties map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             slices.Sorted(maps.Keys(properties)),
		"additionalProperties": false,
	}
}
