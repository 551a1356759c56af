//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"RC/internal/cascade"
	"RC/internal/shape"

	"github.com/jgillich/go-opencl/cl"
)

type openCLDistanceBuilder struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	shapeBuf   *cl.MemObject
	distBuf    *cl.MemObject
	width      int
	height     int
	shapeCap   int
	packed     []float32
	deviceName string
}

const initialShapeCapacity = 64

const distanceKernelSource = `float sd_segment(float2 p, float2 a, float2 b)
{
    float2 pa = p - a;
    float2 ba = b - a;
    float dd = dot(ba, ba);
    float h = dd > 0.0f ? clamp(dot(pa, ba) / dd, 0.0f, 1.0f) : 0.0f;
    return length(pa - ba * h);
}

float sd_triangle(float2 p, float2 p0, float2 p1, float2 p2)
{
    float2 e0 = p1 - p0, v0 = p - p0;
    float2 e1 = p2 - p1, v1 = p - p1;
    float2 e2 = p0 - p2, v2 = p - p2;
    float d = min(min(sd_segment(p, p0, p1), sd_segment(p, p1, p2)), sd_segment(p, p2, p0));
    float s = e0.x * e2.y - e0.y * e2.x;
    if (s * (v0.x * e0.y - v0.y * e0.x) > 0.0f &&
        s * (v1.x * e1.y - v1.y * e1.x) > 0.0f &&
        s * (v2.x * e2.y - v2.y * e2.x) > 0.0f) {
        return -d;
    }
    return d;
}

__kernel void distance_field(
    const int width,
    const int height,
    const int shape_count,
    const float diagonal,
    __global const float* shapes,
    __global float* dist)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    float2 p = (float2)((float)(idx % width), (float)(idx / width));
    float m = diagonal;
    for (int i = 0; i < shape_count; ++i) {
        __global const float* s = shapes + i * 12;
        int kind = (int)s[0];
        float2 c = (float2)(s[1], s[2]);
        float d = diagonal;
        if (kind == 0) {
            d = length(p - c) - s[3];
        } else if (kind == 1) {
            float2 q = fabs(p - c) - (float2)(s[4], s[5]);
            d = length(fmax(q, (float2)(0.0f, 0.0f))) + fmin(fmax(q.x, q.y), 0.0f);
        } else if (kind == 2) {
            d = sd_triangle(p, (float2)(s[6], s[7]), (float2)(s[8], s[9]), (float2)(s[10], s[11]));
        } else if (kind == 3) {
            d = sd_segment(p, (float2)(s[6], s[7]), (float2)(s[8], s[9])) - s[3];
        }
        m = fmin(m, d);
    }
    dist[idx] = fmax(m, 0.0f);
}`

func newOpenCLDistanceBuilder(width, height int) (*openCLDistanceBuilder, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	b := &openCLDistanceBuilder{width: width, height: height, deviceName: device.Name()}
	b.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	b.queue, err = b.context.CreateCommandQueue(device, 0)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	b.program, err = b.context.CreateProgramWithSource([]string{distanceKernelSource})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := b.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		b.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	b.kernel, err = b.program.CreateKernel("distance_field")
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	b.distBuf, err = b.context.CreateEmptyBuffer(cl.MemWriteOnly, width*height*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("allocating distance buffer: %w", err)
	}
	if err := b.ensureShapeCapacity(initialShapeCapacity); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureShapeCapacity grows the device shape buffer to hold n shapes.
func (b *openCLDistanceBuilder) ensureShapeCapacity(n int) error {
	if n <= b.shapeCap && b.shapeBuf != nil {
		return nil
	}
	c := max(b.shapeCap, initialShapeCapacity)
	for c < n {
		c *= 2
	}
	if b.shapeBuf != nil {
		b.shapeBuf.Release()
		b.shapeBuf = nil
	}
	buf, err := b.context.CreateEmptyBuffer(cl.MemReadOnly, c*shapeStride*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		return fmt.Errorf("allocating shape buffer for %d shapes: %w", c, err)
	}
	b.shapeBuf = buf
	b.shapeCap = c
	return nil
}

// BuildDistance evaluates every shape on the device and reads the clamped
// field back into dst.
func (b *openCLDistanceBuilder) BuildDistance(sc *shape.Scene, dst *cascade.DistanceField) error {
	if dst.Width != b.width || dst.Height != b.height || sc.Width != b.width || sc.Height != b.height {
		return fmt.Errorf("OpenCL builder is %dx%d, got scene %dx%d and field %dx%d",
			b.width, b.height, sc.Width, sc.Height, dst.Width, dst.Height)
	}
	n := len(sc.Shapes)
	if err := b.ensureShapeCapacity(n); err != nil {
		return err
	}
	b.packed = packShapes(sc, b.packed)
	if n > 0 {
		if _, err := b.queue.EnqueueWriteBufferFloat32(b.shapeBuf, false, 0, b.packed, nil); err != nil {
			return fmt.Errorf("writing shape buffer: %w", err)
		}
	}
	if err := b.kernel.SetArgs(
		int32(b.width),
		int32(b.height),
		int32(n),
		sc.Diagonal(),
		b.shapeBuf,
		b.distBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := b.queue.EnqueueNDRangeKernel(b.kernel, nil, []int{b.width * b.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := b.queue.EnqueueReadBufferFloat32(b.distBuf, true, 0, dst.Data, nil); err != nil {
		return fmt.Errorf("reading distance buffer: %w", err)
	}
	return nil
}

func (b *openCLDistanceBuilder) Close() {
	if b.shapeBuf != nil {
		b.shapeBuf.Release()
		b.shapeBuf = nil
	}
	if b.distBuf != nil {
		b.distBuf.Release()
		b.distBuf = nil
	}
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
}

func (b *openCLDistanceBuilder) DeviceName() string {
	return b.deviceName
}
