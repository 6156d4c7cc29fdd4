package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Camera is a pinhole camera. Rays start at the focal point and pass through
// a frame spanned by XDirection and YDirection around FrameCentre.
type Camera struct {
	FocalPoint  core.Vec3
	FrameCentre core.Vec3
	XDirection  core.Vec3 // Half-width of the frame
	YDirection  core.Vec3 // Half-height of the frame
}

// DefaultCamera returns a camera on the negative Z axis looking towards +Z
func DefaultCamera() Camera {
	return Camera{
		FocalPoint:  core.NewVec3(0, 0, -5),
		FrameCentre: core.NewVec3(0, 0, -2),
		XDirection:  core.NewVec3(1, 0, 0),
		YDirection:  core.NewVec3(0, 1, 0),
	}
}

// RayForPixel returns the ray through normalized frame coordinates
// frameX, frameY in [-1, 1]
func (c Camera) RayForPixel(frameX, frameY float64) core.Ray {
	framePoint := c.FrameCentre.
		Add(c.XDirection.Multiply(frameX)).
		Add(c.YDirection.Multiply(frameY))
	return core.NewRay(c.FocalPoint, framePoint.Subtract(c.FocalPoint))
}
