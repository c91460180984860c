// Command selftest exercises the full device lifecycle on a host machine.
//
// It registers a handful of demo devices backed by in-memory transports,
// then drops into a small console:
//
//	init            run the init pass and print its report
//	cleanup         run the cleanup pass and print its report
//	find <id>       look up one device and print its descriptor and state
//	state <id>      print just the lifecycle state
//	quit
//
// The failure policy is fixed at startup with -policy.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/shlex"

	"dedrv-go/device"
	"dedrv-go/errcode"
	"dedrv-go/drivers/gpio"
	"dedrv-go/drivers/uart"
	"dedrv-go/lifecycle"
	"dedrv-go/registry"
	"dedrv-go/types"
)

// memPin is an in-memory GPIO line for hosts without hardware.
type memPin struct {
	mode  gpio.Mode
	level bool
}

func (p *memPin) ConfigureInput(gpio.Pull) error { p.mode = gpio.Input; return nil }
func (p *memPin) ConfigureOutput(initial bool) error {
	p.mode = gpio.Output
	p.level = initial
	return nil
}
func (p *memPin) Set(level bool) { p.level = level }
func (p *memPin) Get() bool      { return p.level }

func registerDemoDevices() {
	registry.RegisterDevice("/led0", 10, device.NewWith[gpio.State](gpio.Driver{}, gpio.State{
		Pin:  &memPin{},
		Mode: gpio.Output,
	}))
	registry.RegisterDevice("/button0", 10, device.NewWith[gpio.State](gpio.Driver{}, gpio.State{
		Pin:  &memPin{},
		Mode: gpio.Input,
		Pull: gpio.PullUp,
	}))
	registry.RegisterDevice("/console", 5, device.NewWith[uart.State](uart.Driver{}, uart.State{
		Port: &uart.Loopback{},
		Baud: 115200,
	}))
}

func printReport(r types.PassReport) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal report:", err)
		return
	}
	fmt.Println(string(out))
}

func main() {
	policyName := flag.String("policy", "abort-all", "failure policy: abort-all or continue")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	policy, err := lifecycle.ParsePolicy(*policyName)
	if err != nil {
		log.Error("parse policy", "err", err)
		os.Exit(1)
	}

	registerDemoDevices()
	reg := registry.Static()
	if err := reg.Validate(); err != nil {
		log.Error("registry validation", "err", err)
		os.Exit(1)
	}
	log.Info("registry ready", "devices", reg.Len(), "policy", policy.String())

	mgr := lifecycle.New(reg, lifecycle.Options{Policy: policy})

	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			log.Error("parse command", "err", err)
			fmt.Print("> ")
			continue
		}
		if len(args) == 0 {
			fmt.Print("> ")
			continue
		}

		switch args[0] {
		case "init":
			rep, err := mgr.Init()
			printReport(rep)
			if err != nil {
				log.Error("init pass", "err", err)
			} else if rep.Failed() {
				log.Warn("init pass had device failures")
			}
		case "cleanup":
			rep, err := mgr.Cleanup()
			printReport(rep)
			if err != nil {
				log.Error("cleanup pass", "err", err)
			} else if rep.Failed() {
				log.Warn("cleanup pass had device failures")
			}
		case "find":
			if len(args) != 2 {
				fmt.Println("usage: find <id>")
				break
			}
			h, ok := mgr.Find(args[1])
			if !ok {
				fmt.Printf("%s: %s\n", args[1], errcode.NotFound)
				break
			}
			fmt.Printf("%s priority=%d state=%s\n", h.Desc.ID, h.Desc.Priority, h.State)
		case "state":
			if len(args) != 2 {
				fmt.Println("usage: state <id>")
				break
			}
			st, ok := mgr.State(args[1])
			if !ok {
				fmt.Printf("%s: %s\n", args[1], errcode.NotFound)
				break
			}
			fmt.Println(st)
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: init, cleanup, find <id>, state <id>, quit")
		}
		fmt.Print("> ")
	}
}
