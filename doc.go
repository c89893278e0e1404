// Package physics is a small fixed-capacity rigid body simulator.
//
// Convex polygon Shapes collide with each other: a Step bisects the frame
// time down to the time of impact, applies collision impulses and solves the
// resting contact forces as a linear complementarity problem. Objects are 3D
// mesh bodies that are integrated but never collide, and HeightMaps are
// static terrain built from an image.
package physics
