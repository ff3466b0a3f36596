package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/journeycircle/api/internal/model"
)

// ApplyField sets one top-level session field from an untyped JSON value.
// Unknown fields and malformed values are rejected; the session is only
// mutated on success.
func ApplyField(session *model.WorkflowSession, field string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}

	switch field {
	case "currentStep":
		var step int
		if err := json.Unmarshal(raw, &step); err != nil {
			return fmt.Errorf("currentStep must be a number")
		}
		if step < model.StepServiceArea || step > model.StepLinkAssets {
			return fmt.Errorf("currentStep must be between %d and %d", model.StepServiceArea, model.StepLinkAssets)
		}
		session.CurrentStep = step

	case "clientId":
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("clientId must be a number")
		}
		session.ClientID = &id

	case "serviceAreaId":
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("serviceAreaId must be a number")
		}
		session.ServiceAreaID = &id

	case "serviceAreaName":
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("serviceAreaName must be a string")
		}
		session.ServiceAreaName = name

	case "journeyCircleId":
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("journeyCircleId must be a number")
		}
		session.JourneyCircleID = &id

	case "industries":
		var industries []string
		if err := json.Unmarshal(raw, &industries); err != nil {
			return fmt.Errorf("industries must be a string array")
		}
		session.Industries = industries

	case "brainContent":
		var items []model.ContentItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("brainContent must be a content item array")
		}
		session.BrainContent = items

	case "selectedSolutions":
		var solutions map[int64]string
		if err := json.Unmarshal(raw, &solutions); err != nil {
			return fmt.Errorf("selectedSolutions must map problem ids to titles")
		}
		session.SelectedSolutions = solutions

	case "publishedUrls":
		var urls map[int64]string
		if err := json.Unmarshal(raw, &urls); err != nil {
			return fmt.Errorf("publishedUrls must map problem ids to URLs")
		}
		for _, u := range urls {
			if !IsValidURL(u) {
				return fmt.Errorf("invalid URL: %s", u)
			}
		}
		session.PublishedURLs = urls

	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}
