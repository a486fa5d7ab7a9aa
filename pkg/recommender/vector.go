package recommender

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors in
// [-1, 1]. Mismatched lengths or a zero vector yield 0, the neutral value.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na <= 0 || nb <= 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// WeightedVector pairs a vector with its contribution weight
type WeightedVector struct {
	Vector []float64
	Weight float64
}

// WeightedAverage computes the weighted centroid of the given vectors.
// Vectors with non-positive weight or empty data are skipped; nil is returned
// when nothing usable remains.
func WeightedAverage(vectors []WeightedVector) []float64 {
	var acc []float64
	var totalWeight float64

	for _, wv := range vectors {
		if len(wv.Vector) == 0 || wv.Weight <= 0 {
			continue
		}
		if acc == nil {
			acc = make([]float64, len(wv.Vector))
		}
		if len(wv.Vector) != len(acc) {
			continue
		}
		for i, x := range wv.Vector {
			acc[i] += x * wv.Weight
		}
		totalWeight += wv.Weight
	}

	if acc == nil || totalWeight <= 0 {
		return nil
	}
	for i := range acc {
		acc[i] /= totalWeight
	}
	return acc
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
