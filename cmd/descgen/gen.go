package main

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"dedrv-go/descriptor"
)

// fileTmpl is the shape of a generated registration file. Hook identifiers
// resolve against the target package, so a missing or misnamed hook becomes
// a compile error there rather than a runtime fault.
var fileTmpl = template.Must(template.New("descgen").Parse(`// Code generated by descgen. DO NOT EDIT.

package {{.Package}}

import (
	"dedrv-go/descriptor"
	"dedrv-go/registry"
)

func init() {
{{- range .Devices}}
	registry.Register(descriptor.Descriptor{
		ID:       {{printf "%q" .ID}},
		Priority: {{.Priority}},
		Init:     {{.Init}},
		Cleanup:  {{.Cleanup}},
	})
{{- end}}
}
`))

// Generate renders the registration file for m and gofmt-formats it.
func Generate(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// GenerateRegion packs the manifest into a raw descriptor region plus its
// name table, for targets that load registries from a memory image via
// registry.FromRegion. Hook indices follow declaration order.
func GenerateRegion(m *Manifest) (region, names []byte, err error) {
	entries := make([]descriptor.Entry, len(m.Devices))
	for i, d := range m.Devices {
		entries[i] = descriptor.Entry{ID: d.ID, Priority: int32(d.Priority)}
	}
	return descriptor.Pack(entries)
}
