package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RasterizeTimeout is the maximum time allowed for a single dvisvgm run.
const RasterizeTimeout = 60 * time.Second

// renderScale maps TeX points onto CSS pixels (4/3 px per pt).
const renderScale = 4.0 / 3.0

var (
	viewBoxAttrRe = regexp.MustCompile(`(?i)viewBox\s*=\s*["']([^"']+)["']`)
	xmlnsAttrRe   = regexp.MustCompile(`\s+xmlns='[^']+'`)
)

// Rasterizer converts a DVI file to SVG text via dvisvgm.
type Rasterizer struct {
	// Binary is the dvisvgm executable, resolved through PATH when relative.
	Binary string
}

// NewRasterizer returns a rasterizer using the default binary name.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Binary: "dvisvgm"}
}

// Rasterize runs dvisvgm twice: a probe pass to learn the tight bounding
// box, then a final pass translated so the box's top-left corner lands on
// the origin, scaled to CSS pixels. Coordinates in the result are therefore
// directly comparable across variants. The default xmlns declaration is
// stripped so the document can be inlined into a larger SVG.
func (r *Rasterizer) Rasterize(ctx context.Context, dviPath string) (string, error) {
	probe, err := r.run(ctx, dviPath, 0, 0, 1)
	if err != nil {
		return "", err
	}

	minX, minY, err := viewBoxOrigin(probe)
	if err != nil {
		return "", fmt.Errorf("probe pass for %s: %w", dviPath, err)
	}

	document, err := r.run(ctx, dviPath, -minX, -minY, renderScale)
	if err != nil {
		return "", err
	}
	return xmlnsAttrRe.ReplaceAllString(document, ""), nil
}

func (r *Rasterizer) run(ctx context.Context, dviPath string, translateX, translateY, scale float64) (string, error) {
	args := []string{
		"--bbox=min",
		"--clipjoin",
		"--optimize=group-attributes,remove-clippaths,simplify-transform,collapse-groups",
		"--no-fonts",
		"--stdout",
	}
	if translateX != 0 || translateY != 0 {
		args = append(args, fmt.Sprintf("--translate=%s,%s", formatScalar(translateX), formatScalar(translateY)))
	}
	if scale != 1 {
		args = append(args, "--scale="+formatScalar(scale))
	}
	args = append(args, dviPath)

	execCtx, cancel := context.WithTimeout(ctx, RasterizeTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, r.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("dvisvgm timed out on %s", dviPath)
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("dvisvgm failed for %s: %s", dviPath, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("dvisvgm failed for %s: %w", dviPath, err)
	}
	return stdout.String(), nil
}

// viewBoxOrigin extracts the min-x/min-y pair from a document's viewBox.
func viewBoxOrigin(document string) (float64, float64, error) {
	m := viewBoxAttrRe.FindStringSubmatch(document)
	if m == nil {
		return 0, 0, fmt.Errorf("document has no viewBox")
	}
	fields := strings.Fields(m[1])
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("malformed viewBox %q", m[1])
	}
	minX, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed viewBox %q: %w", m[1], err)
	}
	minY, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed viewBox %q: %w", m[1], err)
	}
	return minX, minY, nil
}

func formatScalar(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
