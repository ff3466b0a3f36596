package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/journeycircle/api/internal/model"
)

const titlesSystemPrompt = `You are a senior content strategist for professional service firms.
You write sharp, specific titles that name a real problem or outcome, never generic filler.
Always answer with valid JSON and nothing else.`

const outlineSystemPrompt = `You are a senior content strategist for professional service firms.
You produce structured long-form content outlines grounded in the reference material you are given.
Always answer with valid JSON and nothing else.`

const contentSystemPrompt = `You are a senior content writer for professional service firms.
You expand outlines into complete, publication-ready content. Answer with the content only, no preamble.`

func buildProblemTitlesPrompt(req *model.ProblemTitlesRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 8 to 10 problem titles for the service area %q.\n", req.ServiceAreaName)
	if len(req.Industries) > 0 {
		fmt.Fprintf(&b, "Target industries: %s.\n", strings.Join(req.Industries, ", "))
	}
	writeReferenceMaterial(&b, req.BrainContent)
	b.WriteString("\nEach title names one concrete problem a prospect in this service area struggles with.\n")
	b.WriteString(`Respond with JSON: {"titles": ["...", "..."]}`)
	return b.String()
}

func buildSolutionTitlesPrompt(req *model.SolutionTitlesRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 5 to 8 solution titles for the problem %q in the service area %q.\n",
		req.ProblemTitle, req.ServiceAreaName)
	if len(req.Industries) > 0 {
		fmt.Fprintf(&b, "Target industries: %s.\n", strings.Join(req.Industries, ", "))
	}
	writeReferenceMaterial(&b, req.BrainContent)
	b.WriteString("\nEach title promises one concrete outcome that resolves the problem.\n")
	b.WriteString(`Respond with JSON: {"titles": ["...", "..."]}`)
	return b.String()
}

func buildOutlinePrompt(req *model.OutlineRequest) string {
	var b strings.Builder
	subject := req.ProblemTitle
	if req.SolutionTitle != "" {
		subject = fmt.Sprintf("%s (solution: %s)", req.ProblemTitle, req.SolutionTitle)
	}
	fmt.Fprintf(&b, "Create a %s outline about %q for the service area %q.\n",
		assetTypeLabel(req.AssetType), subject, req.ServiceAreaName)
	if len(req.Industries) > 0 {
		fmt.Fprintf(&b, "Target industries: %s.\n", strings.Join(req.Industries, ", "))
	}
	writeReferenceMaterial(&b, req.BrainContent)
	b.WriteString("\nThe outline lists numbered sections with one-line descriptions.\n")
	b.WriteString(`Respond with JSON: {"title": "...", "outline": "..."}`)
	return b.String()
}

func buildReviseOutlinePrompt(req *model.ReviseOutlineRequest) string {
	var b strings.Builder
	b.WriteString("Revise the following outline according to the feedback. Keep what the feedback does not touch.\n\n")
	fmt.Fprintf(&b, "Current outline:\n%s\n\nFeedback:\n%s\n\n", req.CurrentOutline, req.Feedback)
	b.WriteString(`Respond with JSON: {"outline": "...", "revision_notes": "..."}`)
	return b.String()
}

func buildContentPrompt(req *model.ContentRequest) string {
	var b strings.Builder
	b.WriteString("Expand the following outline into complete, publication-ready content.\n")
	b.WriteString("Follow the outline's structure section by section.\n\n")
	fmt.Fprintf(&b, "Outline:\n%s\n", req.Outline)
	return b.String()
}

func buildReviseContentPrompt(req *model.ReviseContentRequest) string {
	var b strings.Builder
	b.WriteString("Revise the following content according to the feedback. Keep what the feedback does not touch.\n\n")
	fmt.Fprintf(&b, "Current content:\n%s\n\nFeedback:\n%s\n", req.CurrentContent, req.Feedback)
	return b.String()
}

func buildSlideImagePrompt(req *model.SlideImageRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Professional presentation slide illustration for %q.", req.SlideTitle)
	if req.Section != "" {
		fmt.Fprintf(&b, " Section: %s.", req.Section)
	}
	if len(req.KeyPoints) > 0 {
		fmt.Fprintf(&b, " Key points: %s.", strings.Join(req.KeyPoints, "; "))
	}
	if len(req.DataPoints) > 0 {
		fmt.Fprintf(&b, " Data to visualize: %s.", strings.Join(req.DataPoints, "; "))
	}
	if req.VisualElement != "" {
		fmt.Fprintf(&b, " Visual style: %s.", req.VisualElement)
	}
	b.WriteString(" Clean corporate style, no embedded text.")
	return b.String()
}

func writeReferenceMaterial(b *strings.Builder, brainContent []string) {
	if len(brainContent) == 0 {
		return
	}
	b.WriteString("\nReference material:\n")
	for _, c := range brainContent {
		fmt.Fprintf(b, "---\n%s\n", c)
	}
}

func assetTypeLabel(t model.AssetType) string {
	switch t {
	case model.AssetTypeBlogPost:
		return "blog post"
	case model.AssetTypeSlideDeck:
		return "slide deck"
	case model.AssetTypeInfographic:
		return "infographic"
	case model.AssetTypeEmailSeries:
		return "email series"
	default:
		return string(t)
	}
}

// extractJSON strips markdown code fences that models wrap JSON answers in
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func parseTitles(raw string) ([]string, error) {
	var parsed struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse titles: %w", err)
	}
	titles := make([]string, 0, len(parsed.Titles))
	for _, t := range parsed.Titles {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

func parseOutline(raw string) (title, outline string, err error) {
	var parsed struct {
		Title   string `json:"title"`
		Outline string `json:"outline"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return "", "", fmt.Errorf("failed to parse outline: %w", err)
	}
	return strings.TrimSpace(parsed.Title), strings.TrimSpace(parsed.Outline), nil
}

func parseRevisedOutline(raw string) (outline, notes string, err error) {
	var parsed struct {
		Outline       string `json:"outline"`
		RevisionNotes string `json:"revision_notes"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return "", "", fmt.Errorf("failed to parse revised outline: %w", err)
	}
	return strings.TrimSpace(parsed.Outline), strings.TrimSpace(parsed.RevisionNotes), nil
}
