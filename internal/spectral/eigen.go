package spectral

import "math"

// symmetricEigenvalues computes all eigenvalues of a real symmetric matrix
// using the cyclic Jacobi rotation method. a is consumed row-major and must
// be square; it is not modified (a defensive copy is taken).
//
// Jacobi converges monotonically by driving off-diagonal mass to zero and is
// numerically stable for the small, dense matrices this package deals with
// (embedding-dimension covariance matrices and <=128-node ego subgraphs), so
// there is no need for a banded/tridiagonal reduction first.
func symmetricEigenvalues(a [][]float64) []float64 {
	n := len(a)
	work := make([][]float64, n)
	for i := range a {
		work[i] = append([]float64(nil), a[i]...)
	}

	const maxSweeps = 100
	const tol = 1e-12

	for sweep := 0; sweep < maxSweeps; sweep++ {
		offDiagSum := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				offDiagSum += work[i][j] * work[i][j]
			}
		}
		if offDiagSum < tol {
			break
		}

		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				apq := work[p][q]
				if math.Abs(apq) < 1e-300 {
					continue
				}
				app := work[p][p]
				aqq := work[q][q]

				theta := (aqq - app) / (2 * apq)
				t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
				c := 1.0 / math.Sqrt(t*t+1)
				s := t * c

				for i := 0; i < n; i++ {
					if i != p && i != q {
						aip := work[i][p]
						aiq := work[i][q]
						work[i][p] = c*aip - s*aiq
						work[p][i] = work[i][p]
						work[i][q] = s*aip + c*aiq
						work[q][i] = work[i][q]
					}
				}
				work[p][p] = c*c*app - 2*c*s*apq + s*s*aqq
				work[q][q] = s*s*app + 2*c*s*apq + c*c*aqq
				work[p][q] = 0
				work[q][p] = 0
			}
		}
	}

	eigenvalues := make([]float64, n)
	for i := 0; i < n; i++ {
		eigenvalues[i] = work[i][i]
		if math.IsNaN(eigenvalues[i]) || math.IsInf(eigenvalues[i], 0) {
			eigenvalues[i] = 0
		}
	}
	return eigenvalues
}

func largestEigenvalue(a [][]float64) float64 {
	if len(a) == 0 {
		return 0
	}
	eigenvalues := symmetricEigenvalues(a)
	largest := eigenvalues[0]
	for _, v := range eigenvalues[1:] {
		if v > largest {
			largest = v
		}
	}
	return largest
}
