package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/fundestpuente/agromind-mcp/internal/catalog"
)

const notAvailable = "N/A"

const externalNote = "datos obtenidos desde OpenFarm; los campos de hidroponía pueden faltar"

// cropReport is the common shape rendered for both curated and external
// crops. Nil pointers render as N/A.
type cropReport struct {
	name, scientificName string
	ph, ec               *catalog.Range
	water, air           *catalog.Range
	lightHours           *int
	germinationDays      *int
	harvestDays          *int
	growthStages         []string
	commonIssues         []string
	tips                 []string
	note                 string
}

func (tb *Toolbox) cropInformation(ctx context.Context, req CropInfoRequest) Result {
	if strings.TrimSpace(req.CropName) == "" {
		return invalid("Por favor indica el nombre del cultivo (crop_name), por ejemplo: lechuga, tomate, fresa.")
	}

	if crop, found := tb.catalog.Crop(req.CropName); found {
		return ok(renderCrop(curatedReport(crop)))
	}

	if tb.lookup != nil {
		if partial, found := tb.lookup.Lookup(ctx, req.CropName); found {
			return ok(renderCrop(externalReport(partial)))
		}
	}

	return notFound(fmt.Sprintf("❌ Cultivo %q no encontrado.\n\nCultivos disponibles: %s",
		req.CropName, strings.Join(tb.catalog.CropNames(), ", ")))
}

func curatedReport(c catalog.CropProfile) cropReport {
	return cropReport{
		name:            c.Name,
		scientificName:  c.ScientificName,
		ph:              &c.PHRange,
		ec:              &c.ECRange,
		water:           &c.Temperature.Water,
		air:             &c.Temperature.Air,
		lightHours:      &c.LightHours,
		germinationDays: &c.GerminationDays,
		harvestDays:     &c.HarvestDays,
		growthStages:    c.GrowthStages,
		commonIssues:    c.CommonIssues,
		tips:            c.Tips,
	}
}

func externalReport(p *catalog.PartialCropProfile) cropReport {
	return cropReport{
		name:           p.Name,
		scientificName: p.ScientificName,
		growthStages:   p.GrowthStages,
		commonIssues:   p.CommonIssues,
		tips:           p.Tips,
		note:           externalNote,
	}
}

func renderCrop(r cropReport) string {
	name := r.name
	if name == "" {
		name = "Desconocido"
	}
	scientific := r.scientificName
	if scientific == "" {
		scientific = notAvailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌱 **%s** (%s)\n\n", name, scientific)

	b.WriteString("📊 **PARÁMETROS IDEALES:**\n")
	fmt.Fprintf(&b, "• pH: %s (rango: %s-%s)\n", ideal(r.ph), lower(r.ph), upper(r.ph))
	fmt.Fprintf(&b, "• EC: %s mS/cm (rango: %s-%s)\n", ideal(r.ec), lower(r.ec), upper(r.ec))
	fmt.Fprintf(&b, "• Temp. agua: %s°C (%s-%s°C)\n", ideal(r.water), lower(r.water), upper(r.water))
	fmt.Fprintf(&b, "• Temp. aire: %s°C (%s-%s°C)\n", ideal(r.air), lower(r.air), upper(r.air))
	fmt.Fprintf(&b, "• Horas de luz: %sh/día\n\n", intOrNA(r.lightHours))

	b.WriteString("⏱️ **TIEMPOS:**\n")
	fmt.Fprintf(&b, "• Germinación: %s días\n", intOrNA(r.germinationDays))
	fmt.Fprintf(&b, "• Cosecha: %s días desde siembra\n\n", intOrNA(r.harvestDays))

	b.WriteString("📈 **ETAPAS DE CRECIMIENTO:**\n")
	b.WriteString(numbered(r.growthStages))
	b.WriteString("\n\n⚠️ **PROBLEMAS COMUNES:**\n")
	b.WriteString(bulletsOrNA(r.commonIssues))
	b.WriteString("\n\n💡 **CONSEJOS:**\n")
	b.WriteString(bulletsOrNA(r.tips))

	if r.note != "" {
		fmt.Fprintf(&b, "\n\n_Nota_: %s", r.note)
	}

	return b.String()
}

func ideal(r *catalog.Range) string {
	if r == nil {
		return notAvailable
	}
	return formatNumber(r.Ideal)
}

func lower(r *catalog.Range) string {
	if r == nil {
		return notAvailable
	}
	return formatNumber(r.Min)
}

func upper(r *catalog.Range) string {
	if r == nil {
		return notAvailable
	}
	return formatNumber(r.Max)
}

func intOrNA(v *int) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprint(*v)
}

func numbered(items []string) string {
	if len(items) == 0 {
		return notAvailable
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func bulletsOrNA(items []string) string {
	if len(items) == 0 {
		return notAvailable
	}
	return bullets(items)
}
