package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
)

// indexTemplate is the single page served by a published site. The taxon id
// lands in the inline script as a number; html/template encodes the plural as
// an escaped JSON string literal there and as HTML text in the title.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width,initial-scale=1,shrink-to-fit=no">
    <meta name="theme-color" content="#000000">
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.3.1/dist/leaflet.css">
    <link href="https://fonts.googleapis.com/css?family=Roboto+Slab:700" rel="stylesheet">
    <link href="https://fonts.googleapis.com/css?family=Open+Sans" rel="stylesheet">
    <title>{{.TaxonPlural}} Near Me</title>
    <script>
    window.NEAR_ME_CONFIG = {
        taxon_id: {{.TaxonID}},
        taxon_plural: {{.TaxonPlural}}
    };
    </script>
    <link href="https://www.owlsnearme.com/static/css/main.c7de7c0a.css" rel="stylesheet">
</head>
<body class="home">
    <noscript>You need to enable JavaScript to run this app.</noscript>
    <div id="root"></div>
    <script type="text/javascript" src="https://www.owlsnearme.com/static/js/main.7109f461.js"></script>
</body>
</html>`

type pageData struct {
	TaxonID     template.JS
	TaxonPlural string
}

// Builder renders taxon sites. It is safe for concurrent use.
type Builder struct {
	tmpl *template.Template
}

func NewBuilder() *Builder {
	return &Builder{
		tmpl: template.Must(template.New(IndexFileName).Parse(indexTemplate)),
	}
}

// Build renders the index page for a taxon. Output is deterministic for the
// same arguments.
func (b *Builder) Build(taxonID int64, taxonPlural string) (Artifact, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, pageData{
		TaxonID:     template.JS(strconv.FormatInt(taxonID, 10)),
		TaxonPlural: taxonPlural,
	}); err != nil {
		return Artifact{}, fmt.Errorf("[site Build] render %s: %w", IndexFileName, err)
	}
	return NewArtifact(IndexFileName, buf.Bytes()), nil
}
