//go:build !opencl

package main

import (
	"errors"

	"RC/internal/cascade"
	"RC/internal/shape"
)

type openCLDistanceBuilder struct{}

func newOpenCLDistanceBuilder(width, height int) (*openCLDistanceBuilder, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (b *openCLDistanceBuilder) BuildDistance(sc *shape.Scene, dst *cascade.DistanceField) error {
	return errors.New("OpenCL distance builder unavailable")
}

func (b *openCLDistanceBuilder) Close() {}

func (b *openCLDistanceBuilder) DeviceName() string { return "" }
