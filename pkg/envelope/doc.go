// Package envelope turns an ordered 3D route into an "envelope" mesh: a flat
// top cap, two side walls and a floor footprint.
//
// The route is walked from its last point toward its first. Near the last
// point the envelope tapers to zero width and ramps down from the last
// point's elevation to the first point's, so the finished mesh looks like
// an on-ramp rising into a band of constant width and height. Bends are
// closed with miter joints.
//
// Generation is synchronous and never fails. Routes with fewer than two
// points produce an empty [Group]. The caller owns the returned group and
// must call [Group.Dispose] once it is no longer displayed.
//
// Y is the elevation axis; the floor footprint lies in the X/Z plane.
package envelope
