package tools

import (
	"fmt"
	"strings"

	"github.com/fundestpuente/agromind-mcp/internal/diagnose"
)

func (tb *Toolbox) troubleshoot(req TroubleshootRequest) Result {
	if strings.TrimSpace(req.Symptoms) == "" {
		return invalid("Por favor describe los síntomas observados para poder diagnosticar.")
	}

	best, found := diagnose.Best(req.Symptoms, tb.catalog.Diagnoses())
	if !found {
		return notFound("No encontré coincidencias claras en la guía de troubleshooting. " +
			`Intenta describir síntomas más específicos (ej: "hojas amarillas en la base", "raíces marrones y olor").`)
	}

	entry := best.Entry
	sections := []string{
		fmt.Sprintf("Diagnóstico posible: %s (score: %d)", strings.ReplaceAll(best.Code, "_", " "), best.Score),
		"Síntomas registrados:\n" + bullets(entry.Symptoms),
		"Causas posibles:\n" + bullets(entry.PossibleCauses),
		"Soluciones sugeridas:\n" + bullets(entry.Solutions),
		"Prevención:\n" + bullets(entry.Prevention),
	}
	return ok(strings.Join(sections, "\n\n"))
}
