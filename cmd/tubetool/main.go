// tubetool is a headless utility for generating and inspecting tube meshes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/tubular/internal/config"
	"github.com/Faultbox/tubular/internal/engine/scene"
	"github.com/Faultbox/tubular/internal/logger"
	"github.com/Faultbox/tubular/internal/tube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "simulate", "sim":
		cmdSimulate(args)
	case "template":
		cmdTemplate(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tubetool - tube mesh generator

Usage:
  tubetool <command> [options]

Commands:
  simulate [options]                 Drive a tube along a path and print stats
  template [-verts N] [-radius R]    Print the ring template points
  config [-config file]              Print the effective configuration

Simulate options:
  -path line|circle|helix|zigzag     Path shape (default line)
  -length L                          Distance travelled per run
  -step S                            Distance moved per tick
  -runs N                            Number of runs, laid side by side
  -config file                       Tube settings from a config file
  -obj file                          Export completed runs as Wavefront OBJ
  -v                                 Log session events

Examples:
  tubetool simulate -path helix -length 40
  tubetool simulate -path zigzag -runs 3 -obj trails.obj
  tubetool template -verts 9 -radius 1`)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	pathName := fs.String("path", "line", "Path shape")
	length := fs.Float64("length", 25, "Distance travelled per run")
	step := fs.Float64("step", 0.05, "Distance moved per tick")
	runs := fs.Int("runs", 1, "Number of runs")
	configPath := fs.String("config", "", "Config file")
	objPath := fs.String("obj", "", "Export OBJ to file")
	verbose := fs.Bool("v", false, "Log session events")
	fs.Parse(args)

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	path, err := ParsePath(*pathName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := loadConfig(*configPath)

	graph := scene.New()
	result, err := Simulate(graph, SimulateOptions{
		Settings: cfg.Tube.Settings(),
		Radius:   cfg.Tube.Radius,
		Material: cfg.Tube.Material(),
		Path:     path,
		Length:   float32(*length),
		Step:     float32(*step),
		Runs:     *runs,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printResult(result, graph.Stats())

	if *objPath != "" {
		f, err := os.Create(*objPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		n, err := graph.ExportOBJ(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %d objects to %s\n", n, *objPath)
	}
}

func printResult(r *SimulateResult, stats scene.Stats) {
	fmt.Printf("Path:     %s\n", r.Path)
	fmt.Printf("Ticks:    %d\n", r.Ticks)
	fmt.Println()
	fmt.Printf("  %-4s %8s %8s %10s\n", "RUN", "SEGMENTS", "RINGS", "LENGTH")
	for _, run := range r.Runs {
		fmt.Printf("  %-4d %8d %8d %10.2f\n", run.ID(), len(run.Segments()), run.Rings(), run.Length())
	}
	fmt.Println()
	fmt.Printf("Nodes:     %d groups, %d segments, %d spheres\n", stats.Groups, stats.Segments, stats.Spheres)
	fmt.Printf("Vertices:  %d\n", stats.Vertices)
	fmt.Printf("Triangles: %d\n", stats.Triangles)
}

func cmdTemplate(args []string) {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	verts := fs.Int("verts", tube.DefaultVertsPerLoop, "Points per loop")
	radius := fs.Float64("radius", tube.DefaultRadius, "Tube radius")
	fs.Parse(args)

	if *verts < 3 {
		fmt.Fprintln(os.Stderr, "Error: -verts must be at least 3")
		os.Exit(1)
	}

	points := tube.BuildLoopTemplate(*verts, float32(*radius))
	for i, p := range points {
		fmt.Printf("%3d  % .5f  % .5f  % .5f\n", i, p[0], p[1], p[2])
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	if err := cfg.Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
