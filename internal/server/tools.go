package server

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fundestpuente/agromind-mcp/internal/tools"
)

// parameterKeys is the advertised enum for explain_parameter.
var parameterKeys = []string{"pH", "EC", "PPM", "TDS", "temperature", "humidity", "light", "DO"}

// GetToolDefinitions returns the complete list of available tools.
func GetToolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(tools.CropInformation,
			mcp.WithDescription("Obtiene información detallada sobre cultivos hidropónicos específicos: rangos de pH, EC y temperatura, tiempos, etapas, problemas comunes y consejos."),
			mcp.WithString("crop_name",
				mcp.Required(),
				mcp.Description("Nombre del cultivo (ej: lechuga, tomate, fresa)"),
			),
		),
		mcp.NewTool(tools.TroubleshootIssue,
			mcp.WithDescription("Diagnostica problemas comunes en sistemas hidropónicos a partir de los síntomas observados."),
			mcp.WithString("symptoms",
				mcp.Required(),
				mcp.Description("Descripción de los síntomas observados"),
			),
			mcp.WithString("crop_type",
				mcp.Description("Tipo de cultivo afectado (opcional)"),
			),
		),
		mcp.NewTool(tools.SolutionVolume,
			mcp.WithDescription("Calcula volúmenes y concentraciones para soluciones nutritivas."),
			mcp.WithNumber("tank_liters",
				mcp.Required(),
				mcp.Description("Volumen del tanque en litros (mayor que 0)"),
			),
			mcp.WithNumber("target_ec",
				mcp.Description("EC objetivo en mS/cm (necesario para nutrient_amount)"),
			),
			mcp.WithString("calculation_type",
				mcp.Enum(tools.CalculationTypes...),
				mcp.Description("Tipo de cálculo a realizar; si se omite se listan los disponibles"),
			),
		),
		mcp.NewTool(tools.GrowingCalendar,
			mcp.WithDescription("Genera calendario de siembra, germinación, trasplante y cosecha."),
			mcp.WithString("crop_name",
				mcp.Required(),
				mcp.Description("Nombre del cultivo"),
			),
			mcp.WithString("start_date",
				mcp.Description("Fecha de inicio en formato ISO 8601 (YYYY-MM-DD); por defecto hoy"),
			),
			mcp.WithNumber("quantity",
				mcp.Description("Cantidad de plantas (opcional)"),
			),
		),
		mcp.NewTool(tools.ExplainParameter,
			mcp.WithDescription("Explica parámetros técnicos de hidroponía: qué miden, rango ideal, cómo medirlos y cómo ajustarlos."),
			mcp.WithString("parameter",
				mcp.Required(),
				mcp.Enum(parameterKeys...),
				mcp.Description("Parámetro a explicar"),
			),
			mcp.WithString("context",
				mcp.Description("Contexto específico (opcional)"),
			),
		),
		mcp.NewTool(tools.NutrientRecommendation,
			mcp.WithDescription("Obtiene una recomendación de nutrientes (respuesta simulada hasta conectar el modelo)."),
			mcp.WithString("crop_type",
				mcp.Required(),
				mcp.Description("Tipo de cultivo"),
			),
			mcp.WithString("growth_stage",
				mcp.Required(),
				mcp.Enum(tools.GrowthStages...),
				mcp.Description("Etapa de crecimiento"),
			),
			mcp.WithNumber("current_ec",
				mcp.Description("EC actual en mS/cm"),
			),
			mcp.WithNumber("water_temperature",
				mcp.Description("Temperatura del agua en °C"),
			),
			mcp.WithObject("ambient_conditions",
				mcp.Description("Condiciones ambientales (humedad, CO2, luz...)"),
			),
		),
		mcp.NewTool(tools.PlantHealth,
			mcp.WithDescription("Analiza una imagen de planta para detectar problemas (respuesta simulada hasta conectar el modelo)."),
			mcp.WithString("image_base64",
				mcp.Description("Imagen codificada en base64"),
			),
			mcp.WithString("image_url",
				mcp.Description("URL de la imagen"),
			),
			mcp.WithString("crop_type",
				mcp.Description("Tipo de cultivo"),
			),
		),
	}
}
