package model

import (
	"fmt"
	"strings"
)

// ArtifactID identifies one generated artifact within a session. The kind plus
// a kind-specific reference (problem id, asset id, slide id) forms the key;
// requests for different ids are independent, requests for the same id are
// serialized (at most one in flight).
type ArtifactID struct {
	Kind ArtifactKind
	Ref  string
}

func ProblemTitlesID(serviceAreaID int64) ArtifactID {
	return ArtifactID{Kind: ArtifactProblemTitles, Ref: fmt.Sprintf("%d", serviceAreaID)}
}

func SolutionTitlesID(problemID int64) ArtifactID {
	return ArtifactID{Kind: ArtifactSolutionTitles, Ref: fmt.Sprintf("%d", problemID)}
}

// OutlineID keys outlines by the linked item and format: the journey asset
// row does not exist yet when the first outline request is issued.
func OutlineID(linkedType LinkedToType, linkedID int64, assetType AssetType) ArtifactID {
	return ArtifactID{Kind: ArtifactOutline, Ref: fmt.Sprintf("%s:%d:%s", linkedType, linkedID, assetType)}
}

func ContentID(assetID int64) ArtifactID {
	return ArtifactID{Kind: ArtifactContent, Ref: fmt.Sprintf("%d", assetID)}
}

func SlideImageID(slideRef string) ArtifactID {
	return ArtifactID{Kind: ArtifactSlideImage, Ref: slideRef}
}

func (id ArtifactID) String() string {
	return string(id.Kind) + "/" + id.Ref
}

// MarshalText lets ArtifactID act as a JSON map key when sessions are persisted.
func (id ArtifactID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ArtifactID) UnmarshalText(text []byte) error {
	kind, ref, ok := strings.Cut(string(text), "/")
	if !ok {
		return fmt.Errorf("invalid artifact id %q", string(text))
	}
	id.Kind = ArtifactKind(kind)
	id.Ref = ref
	return nil
}
