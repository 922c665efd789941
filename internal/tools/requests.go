package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Request is a decoded, typed tool invocation. The set of implementations
// is closed; each one belongs to exactly one tool name.
type Request interface {
	ToolName() string
	isRequest()
}

// CropInfoRequest asks for a crop report.
type CropInfoRequest struct {
	CropName string `json:"crop_name"`
}

// TroubleshootRequest asks for a diagnosis from free-text symptoms.
// CropType is accepted for interface compatibility and not used in scoring.
type TroubleshootRequest struct {
	Symptoms string `json:"symptoms"`
	CropType string `json:"crop_type"`
}

// SolutionVolumeRequest asks for nutrient solution arithmetic.
type SolutionVolumeRequest struct {
	TankLiters      *float64 `json:"tank_liters"`
	TargetEC        *float64 `json:"target_ec"`
	CalculationType string   `json:"calculation_type"`
}

// CalendarRequest asks for sowing, germination, transplant and harvest dates.
type CalendarRequest struct {
	CropName  string   `json:"crop_name"`
	StartDate string   `json:"start_date"`
	Quantity  *float64 `json:"quantity"`
}

// ParameterRequest asks for an explanation of a measurable parameter.
type ParameterRequest struct {
	Parameter string `json:"parameter"`
	Context   string `json:"context"`
}

// NutrientRecommendationRequest is the input of the simulated nutrient model.
type NutrientRecommendationRequest struct {
	CropType          string         `json:"crop_type"`
	GrowthStage       string         `json:"growth_stage"`
	CurrentEC         *float64       `json:"current_ec"`
	WaterTemperature  *float64       `json:"water_temperature"`
	AmbientConditions map[string]any `json:"ambient_conditions"`
}

// PlantHealthRequest is the input of the simulated vision model.
type PlantHealthRequest struct {
	ImageBase64 string `json:"image_base64"`
	ImageURL    string `json:"image_url"`
	CropType    string `json:"crop_type"`
}

func (CropInfoRequest) ToolName() string               { return CropInformation }
func (TroubleshootRequest) ToolName() string           { return TroubleshootIssue }
func (SolutionVolumeRequest) ToolName() string         { return SolutionVolume }
func (CalendarRequest) ToolName() string               { return GrowingCalendar }
func (ParameterRequest) ToolName() string              { return ExplainParameter }
func (NutrientRecommendationRequest) ToolName() string { return NutrientRecommendation }
func (PlantHealthRequest) ToolName() string            { return PlantHealth }

func (CropInfoRequest) isRequest()               {}
func (TroubleshootRequest) isRequest()           {}
func (SolutionVolumeRequest) isRequest()         {}
func (CalendarRequest) isRequest()               {}
func (ParameterRequest) isRequest()              {}
func (NutrientRecommendationRequest) isRequest() {}
func (PlantHealthRequest) isRequest()            {}

// ArgumentError reports an argument object that does not fit the tool's shape.
type ArgumentError struct {
	Tool string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Decode turns a tool name and its raw JSON arguments into a typed request.
// Missing or null arguments decode as an empty object. Unknown fields are
// ignored.
func Decode(name string, args json.RawMessage) (Request, error) {
	switch name {
	case CropInformation:
		return decodeInto[CropInfoRequest](name, args)
	case TroubleshootIssue:
		return decodeInto[TroubleshootRequest](name, args)
	case SolutionVolume:
		return decodeInto[SolutionVolumeRequest](name, args)
	case GrowingCalendar:
		return decodeInto[CalendarRequest](name, args)
	case ExplainParameter:
		return decodeInto[ParameterRequest](name, args)
	case NutrientRecommendation:
		return decodeInto[NutrientRecommendationRequest](name, args)
	case PlantHealth:
		return decodeInto[PlantHealthRequest](name, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func decodeInto[T Request](name string, args json.RawMessage) (Request, error) {
	var req T
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return req, nil
	}
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, &ArgumentError{Tool: name, Err: err}
	}
	return req, nil
}
