package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slime/pkg/geom"
)

// RecalculateNormals computes smooth per-vertex normals for an indexed
// triangle list. Each face contributes its unnormalized cross product, so
// larger faces weigh more. Vertices that only touch collapsed faces take
// the average normal of their triangle neighbours, and world up if that
// is also zero. The result is written into dst, which is grown as needed.
func RecalculateNormals(positions []v3.Vec, indices []uint32, dst []v3.Vec) []v3.Vec {
	n := len(positions)
	if cap(dst) >= n {
		dst = dst[:n]
		for i := range dst {
			dst[i] = v3.Vec{}
		}
	} else {
		dst = make([]v3.Vec, n)
	}

	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		pa, pb, pc := positions[a], positions[b], positions[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		dst[a] = dst[a].Add(face)
		dst[b] = dst[b].Add(face)
		dst[c] = dst[c].Add(face)
	}

	var orphans []int
	for i, v := range dst {
		if u, ok := geom.Normalized(v); ok {
			dst[i] = u
		} else {
			dst[i] = v3.Vec{}
			orphans = append(orphans, i)
		}
	}
	if len(orphans) == 0 {
		return dst
	}

	// Borrow direction from neighbours that did get a normal.
	borrowed := make(map[int]v3.Vec, len(orphans))
	for _, o := range orphans {
		borrowed[o] = v3.Vec{}
	}
	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]int{int(indices[t]), int(indices[t+1]), int(indices[t+2])}
		for k, vi := range tri {
			sum, isOrphan := borrowed[vi]
			if !isOrphan {
				continue
			}
			for m, other := range tri {
				if m != k {
					sum = sum.Add(dst[other])
				}
			}
			borrowed[vi] = sum
		}
	}
	for _, o := range orphans {
		dst[o] = geom.NormalizedOr(borrowed[o], geom.Up)
	}
	return dst
}
