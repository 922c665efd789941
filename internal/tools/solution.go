package tools

import (
	"fmt"
	"strings"
)

// Calculation types for calculate_solution_volume.
const (
	CalcNutrientAmount = "nutrient_amount"
	CalcDilution       = "dilution"
	CalcWaterChange    = "water_change"
)

// CalculationTypes lists the accepted calculation_type values.
var CalculationTypes = []string{CalcNutrientAmount, CalcWaterChange, CalcDilution}

// nutrientTier is a fertilizer dose band keyed by target EC.
type nutrientTier struct {
	gramsPer100L float64
	intensity    string
}

func tierFor(targetEC float64) nutrientTier {
	switch {
	case targetEC < 1.2:
		return nutrientTier{gramsPer100L: 5, intensity: "ligera"}
	case targetEC < 2.0:
		return nutrientTier{gramsPer100L: 10, intensity: "moderada"}
	default:
		return nutrientTier{gramsPer100L: 20, intensity: "alta"}
	}
}

const dilutionGuide = `Dilución para bajar EC: fórmula y ejemplo
Necesitas conocer el EC actual (current_ec) y el EC objetivo (target_ec).
Fórmula (litros de agua fresca a añadir) si mezclas en el mismo tanque:
  V_add = V_tank * (EC_current - EC_target) / EC_current
Ejemplo: tanque 100 L, EC_current=3.0, EC_target=2.0 -> V_add = 100*(3-2)/3 = 33.3 L de agua fresca (o reemplaza ~33%).
Si realizas cambio parcial (reemplazar y rellenar), otra opción es extraer una fracción y rellenar con agua limpia.`

const waterChangeGuide = `Recomendación de cambios de agua (heurística):
• EC bajo/moderado (<=1.5): cambio parcial 20–30% cada 1–2 semanas.
• EC moderado-alto (1.5–2.5): cambio parcial 30–50% cada 1–2 semanas.
• EC alto (>2.5): considerar cambio del 50–100% y revisar fuente de nutrientes.
Consejo: mide EC antes y después; mantén registros para ajustar frecuencia.`

const calculationMenu = `Cálculos disponibles:
- nutrient_amount (necesita target_ec)
- dilution (necesita EC actual y objetivo, muestra fórmula)
- water_change (recomendaciones generales)`

func solutionVolume(req SolutionVolumeRequest) Result {
	if req.TankLiters == nil || *req.TankLiters <= 0 {
		return invalid("Por favor provee un volumen de tanque (tank_liters) mayor que 0.")
	}
	liters := *req.TankLiters

	switch strings.ToLower(strings.TrimSpace(req.CalculationType)) {
	case CalcNutrientAmount:
		if req.TargetEC == nil {
			return invalid("Para calcular cantidades de nutrientes, proporciona `target_ec` (mS/cm).")
		}
		ec := *req.TargetEC
		tier := tierFor(ec)
		grams := tier.gramsPer100L * liters / 100
		return ok(fmt.Sprintf("Cálculo de nutrientes (estimado):\n"+
			"• EC objetivo: %s mS/cm\n"+
			"• Intensidad: %s\n"+
			"• Estimación: %.1f g de fertilizante (equivalente a %s g/100 L) para %s L.\n\n"+
			"Nota: Estos valores son heurísticos. Para dosis exactas usa la ficha técnica del fertilizante y ajusta según PPM/EC reales.",
			formatNumber(ec), tier.intensity, grams, formatNumber(tier.gramsPer100L), formatNumber(liters)))
	case CalcDilution:
		return ok(dilutionGuide)
	case CalcWaterChange:
		return ok(waterChangeGuide)
	case "":
		return ok(calculationMenu)
	default:
		return invalid(fmt.Sprintf("Tipo de cálculo %q no reconocido.\n\n%s", req.CalculationType, calculationMenu))
	}
}
