package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/npillmayer/textshaping/internal/hbcmp"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontPath(args)
	otf := mustLoadFont(fontPath)
	ts, err := parseTypesetFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	features, err := parseFeatureList(flags["features"])
	if err != nil {
		fatalf("%v", err)
	}
	input, err := parseShapeInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	outPath := flagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	glyphIndex := mustFlagInt(flags["index"], "index")
	renderAll := mustFlagBool(flags["all"], "all")
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	if width <= 0 || height <= 0 {
		fatalf("--width and --height must be > 0")
	}
	if glyphIndex < 0 {
		fatalf("--index must be >= 0")
	}

	glyphs, err := doShape(otf, ts.buffer(input), features)
	if err != nil {
		fatalf("shape failed: %v", err)
	}
	if len(glyphs) == 0 {
		fatalf("shaping produced no glyphs")
	}
	if !renderAll {
		if glyphIndex >= len(glyphs) {
			fatalf("glyph index %d out of range (glyphs: %d)", glyphIndex, len(glyphs))
		}
		glyphs = glyphs[glyphIndex : glyphIndex+1]
	}
	r := renderer{width: width, height: height, ppem: ppem, bboxes: showBBoxes}
	if err := r.renderPNG(fontPath, glyphs, outPath); err != nil {
		fatalf("render failed: %v", err)
	}
	if renderAll {
		fmt.Printf("wrote %s (glyphs=%d)\n", outPath, len(glyphs))
		return
	}
	fmt.Printf("wrote %s (glyph[%d]=%d, cluster=%d)\n", outPath, glyphIndex, glyphs[0].G, glyphs[0].Cl)
}

// renderer draws a run of shaped glyphs, centered in an image.
type renderer struct {
	width, height int
	ppem          int
	bboxes        bool // draw glyph bounding boxes
}

type glyphPath struct {
	segs   sfnt.Segments
	dx, dy float32 // position of the glyph origin, in pixels
	box    fixed.Rectangle26_6
}

func (r renderer) renderPNG(fontPath string, glyphs []hbcmp.ShapedGlyph, outPath string) error {
	if len(glyphs) == 0 {
		return errors.New("empty glyph run")
	}
	sf, err := parseSFNT(fontPath)
	if err != nil {
		return err
	}
	upem := float32(sf.UnitsPerEm())
	if upem <= 0 {
		return errors.New("invalid units-per-em")
	}
	scale := float32(r.ppem) / upem

	paths := make([]glyphPath, 0, len(glyphs))
	var (
		penX, penY             float32
		minX, minY, maxX, maxY float32
		buf                    sfnt.Buffer
	)
	for _, g := range glyphs {
		segs, err := sf.LoadGlyph(&buf, sfnt.GlyphIndex(g.G), fixed.I(r.ppem), nil)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "ot-tools: skipping glyph %d: %v\n", g.G, err)
			penX += float32(g.AX) * scale
			continue
		}
		// Segments become invalid once the buffer is re-used.
		segs = append(sfnt.Segments(nil), segs...)
		// Positive offsets in OpenType go upward; image Y grows downward.
		p := glyphPath{
			segs: segs,
			dx:   penX + float32(g.DX)*scale,
			dy:   penY - float32(g.DY)*scale,
			box:  segs.Bounds(),
		}
		x0, y0 := float32(p.box.Min.X)/64+p.dx, float32(p.box.Min.Y)/64+p.dy
		x1, y1 := float32(p.box.Max.X)/64+p.dx, float32(p.box.Max.Y)/64+p.dy
		if len(paths) == 0 {
			minX, minY, maxX, maxY = x0, y0, x1, y1
		} else {
			minX, minY = min(minX, x0), min(minY, y0)
			maxX, maxY = max(maxX, x1), max(maxY, y1)
		}
		paths = append(paths, p)
		penX += float32(g.AX) * scale
		penY -= float32(g.AY) * scale
	}
	if len(paths) == 0 {
		return errors.New("no drawable glyph paths found")
	}
	shiftX := (float32(r.width)-(maxX-minX))/2 - minX
	shiftY := (float32(r.height)-(maxY-minY))/2 - minY

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(r.width, r.height)
	rast.DrawOp = draw.Over
	for _, p := range paths {
		tx, ty := shiftX+p.dx, shiftY+p.dy
		pt := func(v fixed.Point26_6) (float32, float32) {
			return tx + float32(v.X)/64, ty + float32(v.Y)/64
		}
		for _, seg := range p.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.MoveTo(pt(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				rast.LineTo(pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				x1, y1 := pt(seg.Args[0])
				x2, y2 := pt(seg.Args[1])
				rast.QuadTo(x1, y1, x2, y2)
			case sfnt.SegmentOpCubeTo:
				x1, y1 := pt(seg.Args[0])
				x2, y2 := pt(seg.Args[1])
				x3, y3 := pt(seg.Args[2])
				rast.CubeTo(x1, y1, x2, y2, x3, y3)
			}
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	if r.bboxes {
		for _, p := range paths {
			tx, ty := int(shiftX+p.dx), int(shiftY+p.dy)
			drawRectOutline(img, p.box.Min.X.Floor()+tx, p.box.Min.Y.Floor()+ty,
				p.box.Max.X.Ceil()+tx, p.box.Max.Y.Ceil()+ty, color.RGBA{255, 0, 0, 255})
		}
	}
	return writePNG(img, outPath)
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if img == nil {
		return
	}
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}

func parseSFNT(fontPath string) (*sfnt.Font, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read font for rasterization: %w", err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse sfnt font for rasterization: %w", err)
	}
	return sf, nil
}
