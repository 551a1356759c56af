package main

import "time"

// Viewer constants. The lit field size and cascade parameters come from the
// YAML configuration instead.
const (
	windowTitle      = "Radiance Cascades"
	defaultTPS       = 60.0
	debugLogInterval = time.Second
	holographicLevel = 3
	allLevels        = -1
	keepConfigValue  = -2
)
