package main

import "flag"

// Command-line flags. Values given here override the configuration file.
var (
	// configPathFlag names the YAML configuration; empty uses the built-in scene.
	configPathFlag = flag.String("config", "", "YAML configuration file (built-in defaults when empty)")

	// maxCascadeFlag overrides cascade.max_cascade; -1 derives it from the diagonal.
	maxCascadeFlag = flag.Int("max-cascade", keepConfigValue, "coarsest cascade index (-1 derives it from the window diagonal)")

	// workersFlag sets how many row bands each pipeline stage is split into.
	workersFlag = flag.Int("workers", 0, "row bands per pipeline stage (0 uses GOMAXPROCS)")

	// debugFlag enables the FPS and stage timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and stage timing overlay")

	// pngFlag renders a single frame headless and exits.
	pngFlag = flag.String("png", "", "render one frame to this PNG file and exit")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// memProfileFlag writes a heap profile on exit, while the pipeline buffers are live.
	memProfileFlag = flag.String("memprofile", "", "write a heap profile to this file on exit")

	// openCLFlag builds the distance field on an OpenCL device.
	openCLFlag = flag.Bool("opencl", false, "build the distance field with OpenCL (requires -tags opencl)")

	// saveConfigFlag writes the effective configuration; S saves the dragged layout there too.
	saveConfigFlag = flag.String("save-config", "", "write the effective configuration to this YAML file")
)
