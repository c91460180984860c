// Command descgen turns a device manifest into a Go file that registers
// each device at package init time.
//
// Usage:
//
//	descgen -in devices.yaml -out devices_gen.go
//	descgen -in devices.yaml -mode region -out devices.img -names devices.names
package main

import (
	"flag"
	"log/slog"
	"os"
)

func main() {
	in := flag.String("in", "devices.yaml", "manifest file")
	out := flag.String("out", "", "output file (default stdout)")
	pkg := flag.String("pkg", "", "override the manifest's package name")
	mode := flag.String("mode", "go", "output mode: go or region")
	namesOut := flag.String("names", "", "name table output file (region mode)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	m, err := LoadManifest(*in)
	if err != nil {
		log.Error("load manifest", "path", *in, "err", err)
		os.Exit(1)
	}
	if *pkg != "" {
		m.Package = *pkg
		if err := m.Validate(); err != nil {
			log.Error("invalid package override", "err", err)
			os.Exit(1)
		}
	}

	if *mode == "region" {
		region, names, err := GenerateRegion(m)
		if err != nil {
			log.Error("pack region", "err", err)
			os.Exit(1)
		}
		if *out == "" || *namesOut == "" {
			log.Error("region mode requires -out and -names")
			os.Exit(1)
		}
		if err := os.WriteFile(*out, region, 0o644); err != nil {
			log.Error("write region", "path", *out, "err", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*namesOut, names, 0o644); err != nil {
			log.Error("write name table", "path", *namesOut, "err", err)
			os.Exit(1)
		}
		log.Info("packed", "records", len(m.Devices), "bytes", len(region))
		return
	}

	src, err := Generate(m)
	if err != nil {
		log.Error("generate", "err", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Error("write output", "path", *out, "err", err)
		os.Exit(1)
	}
	log.Info("generated", "path", *out, "devices", len(m.Devices))
}
