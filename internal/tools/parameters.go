package tools

import (
	"fmt"
	"strings"
)

func (tb *Toolbox) explainParameter(req ParameterRequest) Result {
	key := strings.TrimSpace(req.Parameter)
	if key == "" {
		return invalid(fmt.Sprintf("Por favor indica el parámetro a explicar (parameter). Parámetros disponibles: %s",
			strings.Join(tb.catalog.ParameterKeys(), ", ")))
	}

	param, found := tb.catalog.Parameter(key)
	if !found {
		return notFound(fmt.Sprintf("❌ Parámetro %q no encontrado. Parámetros disponibles: %s",
			req.Parameter, strings.Join(tb.catalog.ParameterKeys(), ", ")))
	}

	text := fmt.Sprintf("**%s**\n%s\n\nRango ideal: %s\n\nCómo medir:\n%s\n\nCómo ajustar:\n%s",
		param.Name, param.Description, param.IdealRange, param.HowToMeasure, param.HowToAdjust)
	if req.Context != "" {
		text += "\n\nContexto: " + req.Context
	}
	return ok(text)
}
