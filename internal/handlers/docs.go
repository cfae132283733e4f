package handlers

import (
	"encoding/json"
	"net/http"
)

var locationParams = []map[string]interface{}{
	{
		"name":        "location",
		"in":          "query",
		"description": "Display name of the location (default: Salt Spring Island, BC)",
		"required":    false,
		"schema":      map[string]string{"type": "string"},
	},
	{
		"name":        "lat",
		"in":          "query",
		"description": "Latitude in decimal degrees, -90 to 90 (default: 48.8167)",
		"required":    false,
		"schema":      map[string]interface{}{"type": "number", "minimum": -90, "maximum": 90},
	},
	{
		"name":        "lon",
		"in":          "query",
		"description": "Longitude in decimal degrees, -180 to 180 (default: -123.5)",
		"required":    false,
		"schema":      map[string]interface{}{"type": "number", "minimum": -180, "maximum": 180},
	},
	{
		"name":        "country",
		"in":          "query",
		"description": "Country name or ISO code; reverse geocoded when omitted",
		"required":    false,
		"schema":      map[string]string{"type": "string"},
	},
}

var errorSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"error":   map[string]string{"type": "string"},
		"message": map[string]string{"type": "string"},
		"code":    map[string]string{"type": "integer"},
	},
}

var domainSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"location": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name":    map[string]string{"type": "string"},
				"lat":     map[string]string{"type": "number"},
				"lon":     map[string]string{"type": "number"},
				"country": map[string]string{"type": "string"},
				"region":  map[string]string{"type": "string"},
			},
		},
		"reading":     map[string]string{"type": "object"},
		"metrics":     map[string]string{"type": "object"},
		"valuation":   map[string]string{"type": "object"},
		"lastUpdated": map[string]string{"type": "string", "format": "date-time"},
		"source":      map[string]interface{}{"type": "string", "description": "Provider name, or \"simulated\""},
	},
}

func jsonContent(schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		"application/json": map[string]interface{}{"schema": schema},
	}
}

func domainPath(summary, description string, extra ...map[string]interface{}) map[string]interface{} {
	params := append(append([]map[string]interface{}{}, locationParams...), extra...)
	return map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     summary,
			"description": description,
			"parameters":  params,
			"responses": map[string]interface{}{
				"200": map[string]interface{}{
					"description": "Domain response; simulated when the live provider fails",
					"content":     jsonContent(domainSchema),
				},
				"400": map[string]interface{}{
					"description": "Invalid coordinates or station",
					"content":     jsonContent(errorSchema),
				},
			},
		},
	}
}

// OpenAPISpec returns the OpenAPI 3.0 specification for the GAIA Natural Capital API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "GAIA Natural Capital API",
			"description": "Environmental data aggregation and natural capital valuation across carbon, climate, soil, forest, ocean and biodiversity",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "GAIA Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/carbon":  domainPath("Carbon and air quality", "Atmospheric CO2, per-capita emissions, sequestration, pollutants and carbon valuation"),
			"/api/climate": domainPath("Climate history", "One year of daily temperature and precipitation with climate regulation valuation"),
			"/api/soil":    domainPath("Soil properties", "SoilGrids topsoil properties, texture, health score and soil valuation"),
			"/api/forest":  domainPath("Forest cover and loss", "Country forest cover, tree cover loss history and forest valuation"),
			"/api/ocean": domainPath("Marine conditions", "Latest NDBC buoy observations and marine ecosystem valuation", map[string]interface{}{
				"name":        "station",
				"in":          "query",
				"description": "NDBC station ID; nearest station when omitted",
				"required":    false,
				"schema":      map[string]string{"type": "string"},
			}),
			"/api/biodiversity": domainPath("Species occurrences", "GBIF occurrences within 10 km, diversity indices and biodiversity valuation"),
			"/api/ocean/stations": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List buoy stations",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Known NDBC stations",
							"content": jsonContent(map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"stations": map[string]interface{}{
										"type": "array",
										"items": map[string]interface{}{
											"type": "object",
											"properties": map[string]interface{}{
												"id":   map[string]string{"type": "string"},
												"name": map[string]string{"type": "string"},
												"lat":  map[string]string{"type": "number"},
												"lon":  map[string]string{"type": "number"},
											},
										},
									},
								},
							}),
						},
					},
				},
			},
			"/api/assessment": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Full assessment",
					"description": "All six domains plus the Natural Capital Index and value summary",
					"parameters":  locationParams,
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Assessment report",
							"content": jsonContent(map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"location":    map[string]string{"type": "object"},
									"index":       map[string]string{"type": "object"},
									"summary":     map[string]string{"type": "object"},
									"domains":     map[string]string{"type": "object"},
									"sources":     map[string]string{"type": "object"},
									"lastUpdated": map[string]string{"type": "string", "format": "date-time"},
								},
							}),
						},
						"400": map[string]interface{}{"description": "Invalid coordinates", "content": jsonContent(errorSchema)},
					},
				},
			},
			"/api/assessment/export": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Download the assessment report",
					"parameters": append(append([]map[string]interface{}{}, locationParams...), map[string]interface{}{
						"name":        "format",
						"in":          "query",
						"description": "Report format (default: csv)",
						"required":    false,
						"schema":      map[string]interface{}{"type": "string", "enum": []string{"csv", "xlsx", "pdf"}},
					}),
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Report file"},
						"400": map[string]interface{}{"description": "Invalid format or coordinates", "content": jsonContent(errorSchema)},
					},
				},
			},
			"/api/chat": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Ask about a location",
					"description": "Keyword-routed Markdown answer over the supplied or freshly composed environmental data",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": jsonContent(map[string]interface{}{
							"type":     "object",
							"required": []string{"query", "location"},
							"properties": map[string]interface{}{
								"query": map[string]string{"type": "string"},
								"location": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"lat":  map[string]string{"type": "number"},
										"lon":  map[string]string{"type": "number"},
										"name": map[string]string{"type": "string"},
									},
								},
								"environmentalData": map[string]string{"type": "object"},
							},
						}),
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Markdown answer",
							"content": jsonContent(map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"response":   map[string]string{"type": "string"},
									"sourceData": map[string]string{"type": "object"},
								},
							}),
						},
						"400": map[string]interface{}{"description": "Missing query or location", "content": jsonContent(errorSchema)},
						"500": map[string]interface{}{"description": "Unreadable body or internal failure", "content": jsonContent(errorSchema)},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API is running",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": jsonContent(map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"status": map[string]string{"type": "string"},
								},
							}),
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
