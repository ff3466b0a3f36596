package model

import (
	"encoding/json"
	"testing"
)

func TestArtifactID_MapKeyRoundTrip(t *testing.T) {
	session := NewWorkflowSession("s1")
	outlineID := OutlineID(LinkedToProblem, 3, AssetTypeBlogPost)
	session.Record(ProblemTitlesID(7)).Status = GenerationStatusSuccess
	session.Record(outlineID).Text = "1. intro"

	data, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded WorkflowSession
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	rec, ok := decoded.Generations[ProblemTitlesID(7)]
	if !ok || rec.Status != GenerationStatusSuccess {
		t.Errorf("problem titles record lost in round trip: %v", decoded.Generations)
	}
	if rec, ok := decoded.Generations[outlineID]; !ok || rec.Text != "1. intro" {
		t.Errorf("outline record lost in round trip: %v", decoded.Generations)
	}
}

func TestOutlineID_EncodesLinkedItemAndFormat(t *testing.T) {
	id := OutlineID(LinkedToSolution, 42, AssetTypeSlideDeck)
	if id.String() != "outline/solution:42:slide_deck" {
		t.Errorf("unexpected id %q", id.String())
	}
}

func TestArtifactID_UnmarshalRejectsGarbage(t *testing.T) {
	var id ArtifactID
	if err := id.UnmarshalText([]byte("no-separator")); err == nil {
		t.Error("expected an error for a key without a kind")
	}
}
