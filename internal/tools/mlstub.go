package tools

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Growth stages accepted by get_ai_nutrient_recommendation.
var GrowthStages = []string{"seedling", "vegetative", "flowering", "fruiting"}

// The two model-backed tools below return fixed, clearly labelled payloads
// until real models are connected. Their argument shapes are the contract
// those models will be called with.

func nutrientRecommendation(req NutrientRecommendationRequest) Result {
	if strings.TrimSpace(req.CropType) == "" {
		return invalid("Por favor indica el tipo de cultivo (crop_type).")
	}
	if !slices.Contains(GrowthStages, req.GrowthStage) {
		return invalid(fmt.Sprintf("Etapa de crecimiento (growth_stage) inválida: %q. Valores aceptados: %s",
			req.GrowthStage, strings.Join(GrowthStages, ", ")))
	}

	var b strings.Builder
	b.WriteString("🤖 **RECOMENDACIÓN DE NUTRIENTES (Simulada)**\n\n")
	b.WriteString("⚠️ NOTA: Esta es una respuesta simulada; no proviene de un modelo entrenado.\n\n")
	fmt.Fprintf(&b, "Cultivo: %s\n", req.CropType)
	fmt.Fprintf(&b, "Etapa: %s\n", req.GrowthStage)
	if req.CurrentEC != nil {
		fmt.Fprintf(&b, "EC actual: %s mS/cm\n", formatNumber(*req.CurrentEC))
	}
	if req.WaterTemperature != nil {
		fmt.Fprintf(&b, "Temperatura del agua: %s°C\n", formatNumber(*req.WaterTemperature))
	}
	if len(req.AmbientConditions) > 0 {
		// Map keys marshal sorted, so the echo is deterministic.
		if ambient, err := json.Marshal(req.AmbientConditions); err == nil {
			fmt.Fprintf(&b, "Condiciones ambientales: %s\n", ambient)
		}
	}
	b.WriteString("\nRecomendación simulada:\n")
	b.WriteString(bullets([]string{
		"NPK: 15-5-20",
		"Calcio: 150 ppm",
		"Magnesio: 50 ppm",
		"EC objetivo: 2.0 mS/cm",
	}))

	return ok(b.String())
}

func plantHealth(req PlantHealthRequest) Result {
	cropType := strings.TrimSpace(req.CropType)
	if cropType == "" {
		cropType = "no especificado"
	}

	var image string
	switch {
	case req.ImageURL != "":
		image = "URL (" + req.ImageURL + ")"
	case req.ImageBase64 != "":
		image = fmt.Sprintf("base64 (%d caracteres)", len(req.ImageBase64))
	default:
		image = "ninguna"
	}

	var b strings.Builder
	b.WriteString("📸 **ANÁLISIS DE SALUD DE PLANTA (Simulado)**\n\n")
	b.WriteString("⚠️ NOTA: Esta es una respuesta simulada; no proviene de un modelo de visión.\n\n")
	fmt.Fprintf(&b, "Cultivo: %s\n", cropType)
	fmt.Fprintf(&b, "Imagen recibida: %s\n\n", image)
	b.WriteString("Estado general: Saludable (simulado)\n")
	b.WriteString("Problemas detectados: Ninguno\n")
	b.WriteString("Confianza: 95%")

	return ok(b.String())
}
