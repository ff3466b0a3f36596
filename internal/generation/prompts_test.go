package generation

import (
	"strings"
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func TestParseTitles(t *testing.T) {
	titles, err := parseTitles(`{"titles": ["One", "  Two  ", "", "   "]}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(titles) != 2 || titles[0] != "One" || titles[1] != "Two" {
		t.Errorf("expected trimmed non-empty titles, got %v", titles)
	}

	if _, err := parseTitles("not json"); err == nil {
		t.Error("garbage must fail to parse")
	}
}

func TestExtractJSON_StripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"titles\": [\"One\"]}\n```"
	titles, err := parseTitles(fenced)
	if err != nil {
		t.Fatalf("fenced JSON failed: %v", err)
	}
	if len(titles) != 1 || titles[0] != "One" {
		t.Errorf("unexpected titles: %v", titles)
	}

	bare := "```\n{\"titles\": [\"Two\"]}\n```"
	titles, err = parseTitles(bare)
	if err != nil {
		t.Fatalf("bare fence failed: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Two" {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestParseOutline(t *testing.T) {
	title, outline, err := parseOutline(`{"title": " T ", "outline": "1. intro\n2. body"}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if title != "T" || outline != "1. intro\n2. body" {
		t.Errorf("unexpected result: %q %q", title, outline)
	}
}

func TestBuildProblemTitlesPrompt(t *testing.T) {
	prompt := buildProblemTitlesPrompt(&model.ProblemTitlesRequest{
		ServiceAreaName: "payroll compliance",
		Industries:      []string{"construction"},
		BrainContent:    []string{"We serve mid-size contractors."},
	})
	for _, want := range []string{"payroll compliance", "construction", "mid-size contractors", `{"titles"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSlideImagePrompt(t *testing.T) {
	prompt := buildSlideImagePrompt(&model.SlideImageRequest{
		SlideTitle: "Quarterly results",
		KeyPoints:  []string{"growth", "churn"},
		DataPoints: []string{"ARR up 40%"},
	})
	for _, want := range []string{"Quarterly results", "growth; churn", "ARR up 40%"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestMockProblemTitles(t *testing.T) {
	titles := mockProblemTitles("payroll compliance")
	if len(titles) < 8 {
		t.Fatalf("expected at least 8 mock titles, got %d", len(titles))
	}
	found := false
	for _, title := range titles {
		if strings.Contains(title, "payroll compliance") {
			found = true
			break
		}
	}
	if !found {
		t.Error("mock titles must mention the service area")
	}
}
