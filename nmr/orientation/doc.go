// Package orientation builds the powder-averaging quadrature used by the
// simulation: a fixed set of crystallite orientations with integration
// weights and the triangle mesh connecting them.
//
// The quadrature follows Alderman, Solum and Grant: the face of an octahedron
// is divided into n^2 triangles by an integration density n, every grid point
// is projected onto the unit sphere, and its weight is 1/r^3 where r is the
// distance of the grid point from the origin. One octant face is generated and
// replicated to cover a hemisphere (4 octants) or the full sphere (8 octants).
//
// Orientation index layout: the points of octant k occupy the contiguous
// range [k*OctantOrientations, (k+1)*OctantOrientations), in the same order
// as the points of the first octant. Triangle vertices are octant-local
// indices into that range.
package orientation
