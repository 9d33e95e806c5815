package report

import (
	"html/template"
	"io"
	"sort"

	"github.com/leoluk/replay_counters/collector"
	"github.com/leoluk/replay_counters/replay"
)

// Catalog is the data behind the counter catalog page.
type Catalog struct {
	Capture   string
	Driver    string
	Events    int
	Drawcalls int
	Counters  []replay.CounterDescriptor
}

// NewCatalog summarises draws and counters for WriteHTML. Counters are
// listed by ascending id.
func NewCatalog(capture, driver string, draws *collector.DrawIndex, counters *collector.CounterSet) Catalog {
	c := Catalog{
		Capture:  capture,
		Driver:   driver,
		Events:   draws.Len(),
		Counters: counters.Descriptors(),
	}

	draws.Each(func(d *replay.DrawEvent) {
		if d.Flags.Has(replay.Drawcall) {
			c.Drawcalls++
		}
	})

	sort.Slice(c.Counters, func(i, j int) bool {
		return c.Counters[i].Counter < c.Counters[j].Counter
	})

	return c
}

var catalogTemplate = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"mangle": collector.MakePrometheusName,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>replay_counters catalog</title>
</head>
<body>
<h1>replay_counters catalog</h1>

<p>Capture: {{ .Capture }}</p>
<p>Driver: {{ .Driver }}</p>
<p>Events: {{ .Events }} ({{ .Drawcalls }} drawcalls)</p>
<p>Counter count: {{ .Counters | len }}</p>

<table border="1">
    <tr>
        <th>Id</th>
        <th>Name</th>
        <th>Metric name</th>
        <th>Category</th>
        <th>Unit</th>
        <th>Type</th>
        <th>Width</th>
        <th>Description</th>
    </tr>
    {{ range .Counters }}
    <tr>
        <td>{{ .Counter }}</td>
        <td>{{ .Name }}</td>
        <td>{{ . | mangle }}</td>
        <td>{{ .Category }}</td>
        <td>{{ .Unit }}</td>
        <td>{{ .ResultType }}</td>
        <td>{{ .ResultByteWidth }}</td>
        <td>{{ .Description }}</td>
    </tr>
    {{ end }}
</table>
</body>
</html>
`))

// WriteHTML renders the catalog page.
func WriteHTML(w io.Writer, c Catalog) error {
	return catalogTemplate.Execute(w, c)
}
