// Package layout encodes the cross-boundary records (materials, spheres,
// triangles, BVH nodes, the parameter block) in the 16-byte-aligned
// convention GPU buffer producers use: 3-component vectors are padded to 16
// bytes whenever an unrelated scalar follows, scalars pack into the padding
// of the vector they belong with, and structs round up to 16 bytes. The
// field offsets here are the contract with the host; a producer that
// disagrees must be re-specified together with this package.
package layout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"

	"github.com/arvhn/go-tracekernel/pkg/core"
	"github.com/arvhn/go-tracekernel/pkg/geometry"
	"github.com/arvhn/go-tracekernel/pkg/kernel"
)

// Record sizes in bytes. Every record is a multiple of 16.
const (
	MaterialSize = 32
	SphereSize   = 48
	TriangleSize = 144
	NodeSize     = 48
	ParamsSize   = 160
)

func putFloat(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

func getFloat(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func putInt(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
}

func getInt(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

// putVec3 writes the 12 payload bytes of a vector; the fourth lane is left
// to whoever owns the padding scalar.
func putVec3(b []byte, off int, v f32.Vec3) {
	putFloat(b, off, v[0])
	putFloat(b, off+4, v[1])
	putFloat(b, off+8, v[2])
}

func getVec3(b []byte, off int) f32.Vec3 {
	return f32.Vec3{getFloat(b, off), getFloat(b, off+4), getFloat(b, off+8)}
}

func wire(v core.Vec3) f32.Vec3 {
	return f32.Vec3{v.X, v.Y, v.Z}
}

func unwire(v f32.Vec3) core.Vec3 {
	return core.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Material layout (32 bytes):
//
//	0  albedo        vec3
//	16 emissionColor vec3
//	28 emissionStrength float
func EncodeMaterial(dst []byte, m core.Material) {
	putVec3(dst, 0, wire(m.Albedo))
	putVec3(dst, 16, wire(m.EmissionColor))
	putFloat(dst, 28, m.EmissionStrength)
}

func DecodeMaterial(src []byte) core.Material {
	return core.Material{
		Albedo:           unwire(getVec3(src, 0)),
		EmissionColor:    unwire(getVec3(src, 16)),
		EmissionStrength: getFloat(src, 28),
	}
}

// Sphere layout (48 bytes): material at 0, then
//
//	32 center vec3
//	44 radius float
func EncodeSphere(dst []byte, s geometry.Sphere) {
	EncodeMaterial(dst[0:MaterialSize], s.Material)
	putVec3(dst, 32, wire(s.Center))
	putFloat(dst, 44, s.Radius)
}

func DecodeSphere(src []byte) geometry.Sphere {
	return geometry.Sphere{
		Material: DecodeMaterial(src[0:MaterialSize]),
		Center:   unwire(getVec3(src, 32)),
		Radius:   getFloat(src, 44),
	}
}

// Triangle layout (144 bytes): three positions, three normals, centroid,
// each a 16-byte vec3 slot, then the material.
//
//	0   A    16  B    32  C
//	48  NA   64  NB   80  NC
//	96  centroid
//	112 material
func EncodeTriangle(dst []byte, t geometry.Triangle) {
	putVec3(dst, 0, wire(t.A))
	putVec3(dst, 16, wire(t.B))
	putVec3(dst, 32, wire(t.C))
	putVec3(dst, 48, wire(t.NA))
	putVec3(dst, 64, wire(t.NB))
	putVec3(dst, 80, wire(t.NC))
	putVec3(dst, 96, wire(t.Centroid))
	EncodeMaterial(dst[112:112+MaterialSize], t.Material)
}

func DecodeTriangle(src []byte) geometry.Triangle {
	return geometry.Triangle{
		A:        unwire(getVec3(src, 0)),
		B:        unwire(getVec3(src, 16)),
		C:        unwire(getVec3(src, 32)),
		NA:       unwire(getVec3(src, 48)),
		NB:       unwire(getVec3(src, 64)),
		NC:       unwire(getVec3(src, 80)),
		Centroid: unwire(getVec3(src, 96)),
		Material: DecodeMaterial(src[112 : 112+MaterialSize]),
	}
}

// BVH node layout (48 bytes): the two leaf slots share the first 16-byte
// row, and each box corner packs a child index into its padding lane.
//
//	0  leafA int32   4  leafB int32
//	16 min vec3      28 childA int32
//	32 max vec3      44 childB int32
func EncodeNode(dst []byte, n geometry.BVHNode) {
	putInt(dst, 0, n.Leaves[0])
	putInt(dst, 4, n.Leaves[1])
	putVec3(dst, 16, wire(n.Min))
	putInt(dst, 28, n.ChildA)
	putVec3(dst, 32, wire(n.Max))
	putInt(dst, 44, n.ChildB)
}

func DecodeNode(src []byte) geometry.BVHNode {
	return geometry.BVHNode{
		Leaves: [geometry.LeafSize]int32{getInt(src, 0), getInt(src, 4)},
		Min:    unwire(getVec3(src, 16)),
		ChildA: getInt(src, 28),
		Max:    unwire(getVec3(src, 32)),
		ChildB: getInt(src, 44),
	}
}

// Parameter block layout (160 bytes):
//
//	0   frameCounter uint32   4 samplesPerPixel   8 bounceCount   12 focalLength
//	16  zenith vec3   32 horizon vec3   48 ground vec3
//	64  cameraPosition vec3
//	80  cameraTransform mat4 (column-major)
//	144 inputChanged uint32
func EncodeParams(dst []byte, p kernel.Params) {
	putInt(dst, 0, int32(p.FrameCounter))
	putInt(dst, 4, int32(p.SamplesPerPixel))
	putInt(dst, 8, int32(p.BounceCount))
	putFloat(dst, 12, p.FocalLength)
	putVec3(dst, 16, wire(p.Sky.Zenith))
	putVec3(dst, 32, wire(p.Sky.Horizon))
	putVec3(dst, 48, wire(p.Sky.Ground))
	putVec3(dst, 64, wire(p.CameraPosition))
	for i := 0; i < 16; i++ {
		putFloat(dst, 80+i*4, p.CameraTransform[i])
	}
	var changed int32
	if p.InputChanged {
		changed = 1
	}
	putInt(dst, 144, changed)
}

func DecodeParams(src []byte) kernel.Params {
	var transform mgl32.Mat4
	for i := 0; i < 16; i++ {
		transform[i] = getFloat(src, 80+i*4)
	}
	p := kernel.Params{
		FrameCounter:    uint32(getInt(src, 0)),
		SamplesPerPixel: int(getInt(src, 4)),
		BounceCount:     int(getInt(src, 8)),
		FocalLength:     getFloat(src, 12),
		CameraPosition:  unwire(getVec3(src, 64)),
		CameraTransform: transform,
		InputChanged:    getInt(src, 144) != 0,
	}
	p.Sky.Zenith = unwire(getVec3(src, 16))
	p.Sky.Horizon = unwire(getVec3(src, 32))
	p.Sky.Ground = unwire(getVec3(src, 48))
	return p
}

// EncodeTriangleBuffer packs a triangle slice into one contiguous buffer.
func EncodeTriangleBuffer(triangles []geometry.Triangle) []byte {
	buf := make([]byte, len(triangles)*TriangleSize)
	for i, t := range triangles {
		EncodeTriangle(buf[i*TriangleSize:(i+1)*TriangleSize], t)
	}
	return buf
}

// DecodeTriangleBuffer unpacks a contiguous triangle buffer.
func DecodeTriangleBuffer(buf []byte) ([]geometry.Triangle, error) {
	if len(buf)%TriangleSize != 0 {
		return nil, fmt.Errorf("layout: triangle buffer length %d not a multiple of %d", len(buf), TriangleSize)
	}
	triangles := make([]geometry.Triangle, len(buf)/TriangleSize)
	for i := range triangles {
		triangles[i] = DecodeTriangle(buf[i*TriangleSize:])
	}
	return triangles, nil
}

// EncodeNodeBuffer packs a BVH node slice into one contiguous buffer.
func EncodeNodeBuffer(nodes []geometry.BVHNode) []byte {
	buf := make([]byte, len(nodes)*NodeSize)
	for i, n := range nodes {
		EncodeNode(buf[i*NodeSize:(i+1)*NodeSize], n)
	}
	return buf
}

// DecodeNodeBuffer unpacks a contiguous BVH node buffer.
func DecodeNodeBuffer(buf []byte) ([]geometry.BVHNode, error) {
	if len(buf)%NodeSize != 0 {
		return nil, fmt.Errorf("layout: node buffer length %d not a multiple of %d", len(buf), NodeSize)
	}
	nodes := make([]geometry.BVHNode, len(buf)/NodeSize)
	for i := range nodes {
		nodes[i] = DecodeNode(buf[i*NodeSize:])
	}
	return nodes, nil
}

// EncodeSphereBuffer packs a sphere slice into one contiguous buffer.
func EncodeSphereBuffer(spheres []geometry.Sphere) []byte {
	buf := make([]byte, len(spheres)*SphereSize)
	for i, s := range spheres {
		EncodeSphere(buf[i*SphereSize:(i+1)*SphereSize], s)
	}
	return buf
}

// DecodeSphereBuffer unpacks a contiguous sphere buffer.
func DecodeSphereBuffer(buf []byte) ([]geometry.Sphere, error) {
	if len(buf)%SphereSize != 0 {
		return nil, fmt.Errorf("layout: sphere buffer length %d not a multiple of %d", len(buf), SphereSize)
	}
	spheres := make([]geometry.Sphere, len(buf)/SphereSize)
	for i := range spheres {
		spheres[i] = DecodeSphere(buf[i*SphereSize:])
	}
	return spheres, nil
}
