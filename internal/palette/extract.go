package palette

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/san-kum/colorfield/internal/chroma"
)

// Method selects the palette extraction algorithm.
type Method int

const (
	MethodDominant Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "dominant", "":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	default:
		return MethodDominant, fmt.Errorf("unknown palette method: %s (valid: dominant, kmeans)", s)
	}
}

// Extract reduces an image to k representative colors. The result is
// ordered by prominence, most dominant first.
func Extract(img image.Image, k int, method Method) (chroma.List, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", k)
	}
	switch method {
	case MethodKMeans:
		return extractKMeans(img, k)
	default:
		return extractDominant(img, k), nil
	}
}

func extractDominant(img image.Image, k int) chroma.List {
	candidates := dominantcolor.FindWeight(img, k)
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	l := make(chroma.List, 0, len(candidates))
	for _, c := range candidates {
		l = append(l, chroma.FromColor(c.RGBA))
	}
	return l
}

func extractKMeans(img image.Image, k int) (chroma.List, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty image")
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("no opaque pixels to cluster")
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}

	// Dominant clusters first.
	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	l := make(chroma.List, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		l = append(l, chroma.FromColorful(col))
	}
	return l, nil
}
