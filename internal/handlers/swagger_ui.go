package handlers

import (
	"html/template"
	"net/http"
)

const swaggerUIVersion = "5.10.0"

// docsPage is what the docs template renders.
type docsPage struct {
	Title     string
	Tagline   string
	SpecURL   string
	AssetBase string
}

var defaultDocsPage = docsPage{
	Title:     "GAIA Natural Capital API",
	Tagline:   "Carbon, climate, soil, forest, ocean and biodiversity data priced as natural capital",
	SpecURL:   "/api/docs/openapi.json",
	AssetBase: "https://unpkg.com/swagger-ui-dist@" + swaggerUIVersion,
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}} Documentation</title>
    <link rel="stylesheet" type="text/css" href="{{.AssetBase}}/swagger-ui.css">
    <style>
        body { margin: 0; font-family: sans-serif; }
        .gaia-banner { background: #2e7d32; color: #fff; padding: 12px 24px; }
        .gaia-banner h1 { margin: 0; font-size: 20px; }
        .gaia-banner p { margin: 4px 0 0; font-size: 13px; opacity: 0.85; }
        .swagger-ui .topbar { display: none; }
    </style>
</head>
<body>
    <header class="gaia-banner">
        <h1>{{.Title}}</h1>
        <p>{{.Tagline}}</p>
    </header>
    <div id="swagger-ui"></div>
    <script src="{{.AssetBase}}/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SpecURL}}",
                dom_id: "#swagger-ui",
                deepLinking: true,
                tryItOutEnabled: true,
                defaultModelsExpandDepth: 1,
                docExpansion: "list",
                presets: [SwaggerUIBundle.presets.apis]
            });
        };
    </script>
</body>
</html>`))

// SwaggerUI serves the interactive page for the OpenAPI document.
func SwaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := docsTemplate.Execute(w, defaultDocsPage); err != nil {
		http.Error(w, "failed to render docs", http.StatusInternalServerError)
	}
}
