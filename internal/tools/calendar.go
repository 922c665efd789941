package tools

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// transplantCapDays bounds the transplant offset regardless of crop.
const transplantCapDays = 14

func (tb *Toolbox) growingCalendar(req CalendarRequest) Result {
	if strings.TrimSpace(req.CropName) == "" {
		return invalid("Por favor indica el nombre del cultivo (crop_name) para generar el calendario.")
	}

	crop, found := tb.catalog.Crop(req.CropName)
	if !found {
		return notFound(fmt.Sprintf("❌ Cultivo %q no encontrado. Cultivos disponibles: %s",
			req.CropName, strings.Join(tb.catalog.CropNames(), ", ")))
	}

	sowing, err := tb.startDate(req.StartDate)
	if err != nil {
		return invalid("Fecha de inicio inválida. Usa formato ISO (YYYY-MM-DD) o deja vacía para usar hoy.")
	}

	germination := sowing.AddDate(0, 0, crop.GerminationDays)
	transplant := sowing.AddDate(0, 0, min(transplantCapDays, crop.GerminationDays+7))
	harvest := sowing.AddDate(0, 0, crop.HarvestDays)

	lines := []string{
		"Calendario para " + crop.Name,
		"• Siembra: " + sowing.Format(dateLayout),
		fmt.Sprintf("• Germinación estimada: %s (~%d días)", germination.Format(dateLayout), crop.GerminationDays),
		"• Trasplante estimado: " + transplant.Format(dateLayout),
		fmt.Sprintf("• Cosecha estimada: %s (~%d días)", harvest.Format(dateLayout), crop.HarvestDays),
	}
	if req.Quantity != nil {
		lines = append(lines, fmt.Sprintf("• Cantidad: %s plantas", formatNumber(*req.Quantity)))
	}

	return ok(strings.Join(lines, "\n"))
}

// startDate parses an ISO date or timestamp and returns midnight UTC of that
// day. An empty value means today.
func (tb *Toolbox) startDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return truncateDay(tb.now()), nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start date %q: %w", value, err)
	}
	return truncateDay(t), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
