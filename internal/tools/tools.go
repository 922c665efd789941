// Package tools implements the hydroponics assistant tools: crop reports,
// symptom diagnosis, nutrient solution arithmetic, growing calendars,
// parameter explanations and the simulated model-backed recommendations.
//
// Every tool returns a Result. Expected problems such as a missing argument
// or an unknown crop are ordinary results with guidance text; only an
// unknown tool name is reported as an error.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fundestpuente/agromind-mcp/internal/catalog"
)

// Tool names exposed over MCP.
const (
	CropInformation        = "get_crop_information"
	TroubleshootIssue      = "troubleshoot_issue"
	SolutionVolume         = "calculate_solution_volume"
	GrowingCalendar        = "get_growing_calendar"
	ExplainParameter       = "explain_parameter"
	NutrientRecommendation = "get_ai_nutrient_recommendation"
	PlantHealth            = "analyze_plant_health"
)

// Names lists every tool in registration order.
var Names = []string{
	CropInformation,
	TroubleshootIssue,
	SolutionVolume,
	GrowingCalendar,
	ExplainParameter,
	NutrientRecommendation,
	PlantHealth,
}

// ErrUnknownTool is returned for a tool name outside Names.
var ErrUnknownTool = errors.New("unknown tool")

// Outcome classifies a tool result.
type Outcome int

const (
	OK Outcome = iota
	InvalidInput
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Result is the text a tool produced and how it went.
type Result struct {
	Text    string
	Outcome Outcome
}

func ok(text string) Result       { return Result{Text: text, Outcome: OK} }
func invalid(text string) Result  { return Result{Text: text, Outcome: InvalidInput} }
func notFound(text string) Result { return Result{Text: text, Outcome: NotFound} }

// CropLookup resolves crops missing from the local catalog.
type CropLookup interface {
	Lookup(ctx context.Context, name string) (*catalog.PartialCropProfile, bool)
}

// Toolbox runs tools against an injected catalog and optional external lookup.
type Toolbox struct {
	catalog *catalog.Catalog
	lookup  CropLookup
	now     func() time.Time
}

// Option configures a Toolbox.
type Option func(*Toolbox)

// WithClock replaces the clock used for default calendar start dates.
func WithClock(now func() time.Time) Option {
	return func(tb *Toolbox) {
		tb.now = now
	}
}

// New creates a Toolbox. lookup may be nil, in which case crops missing
// from the catalog are simply not found.
func New(cat *catalog.Catalog, lookup CropLookup, opts ...Option) *Toolbox {
	tb := &Toolbox{
		catalog: cat,
		lookup:  lookup,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(tb)
	}
	return tb
}

// Call decodes raw arguments for the named tool and runs it. Malformed
// arguments produce an InvalidInput result; an unknown name produces
// ErrUnknownTool.
func (tb *Toolbox) Call(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	req, err := Decode(name, args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			return invalid(fmt.Sprintf("Argumentos inválidos para %s: %v. Revisa los tipos de cada campo en la definición de la herramienta.",
				argErr.Tool, argErr.Err)), nil
		}
		return Result{}, err
	}
	return tb.Execute(ctx, req), nil
}

// Execute runs an already decoded request.
func (tb *Toolbox) Execute(ctx context.Context, req Request) Result {
	switch r := req.(type) {
	case CropInfoRequest:
		return tb.cropInformation(ctx, r)
	case TroubleshootRequest:
		return tb.troubleshoot(r)
	case SolutionVolumeRequest:
		return solutionVolume(r)
	case CalendarRequest:
		return tb.growingCalendar(r)
	case ParameterRequest:
		return tb.explainParameter(r)
	case NutrientRecommendationRequest:
		return nutrientRecommendation(r)
	case PlantHealthRequest:
		return plantHealth(r)
	default:
		panic(fmt.Sprintf("tools: unhandled request type %T", req))
	}
}

// bullets renders items as "• item" lines.
func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// formatNumber prints a float without trailing zeros: 6 -> "6", 6.5 -> "6.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
