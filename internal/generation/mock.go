package generation

import (
	"fmt"

	"github.com/journeycircle/api/internal/model"
)

// Mock payloads keep the wizard walkable when no AI provider is configured,
// matching the behavior of the other unconfigured clients.

func mockProblemTitles(serviceAreaName string) []string {
	templates := []string{
		"Why %s projects stall after the first quarter",
		"The hidden cost of doing %s in-house",
		"When %s vendors overpromise and underdeliver",
		"How compliance gaps derail %s initiatives",
		"Why your team resists every new %s process",
		"The reporting blind spots in most %s programs",
		"What slow %s turnaround really costs you",
		"Why %s budgets keep overrunning",
	}
	titles := make([]string, len(templates))
	for i, t := range templates {
		titles[i] = fmt.Sprintf(t, serviceAreaName)
	}
	return titles
}

func mockSolutionTitles(problemTitle string) []string {
	templates := []string{
		"A 90-day roadmap to resolve: %s",
		"The audit that uncovers the root of: %s",
		"How top firms eliminated: %s",
		"A self-serve playbook for: %s",
		"The quick win that defuses: %s",
		"Outsource or fix: a decision guide for: %s",
	}
	titles := make([]string, len(templates))
	for i, t := range templates {
		titles[i] = fmt.Sprintf(t, problemTitle)
	}
	return titles
}

func mockOutline(req *model.OutlineRequest) (title, outline string) {
	title = fmt.Sprintf("%s: a practical guide", req.ProblemTitle)
	outline = fmt.Sprintf(`1. The problem in context - why %q matters for %s
2. What it costs to ignore - symptoms and downstream effects
3. Root causes - the three patterns behind the problem
4. The approach - a step-by-step path to resolution
5. Proof - what changes once the approach is in place
6. Next steps - how to get started this quarter`,
		req.ProblemTitle, req.ServiceAreaName)
	return title, outline
}

func mockContent(outline string) string {
	return fmt.Sprintf(`## Draft content

This draft was produced without an AI provider configured. It follows the
approved outline below; replace each section with final copy.

%s

Each numbered section above becomes one part of the finished piece.`, outline)
}

// mockImageBase64 is a 1x1 transparent PNG
const mockImageBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
