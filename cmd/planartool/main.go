// Command planartool is a reference host for the planar library: it decodes
// an image into float planes, drives filters row by row through the streaming
// contract, and writes the result back out.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/vearutop/planar"
	"github.com/vearutop/planar/api"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "resize":
		if err := runResize(os.Args[2:]); err != nil {
			fail(err)
		}
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fail(err)
		}
	case "colorspace":
		if err := runColorspace(os.Args[2:]); err != nil {
			fail(err)
		}
	case "version":
		major, minor, micro := api.VersionInfo()
		fmt.Printf("planar %d.%d.%d (api %d, cpu %s)\n", major, minor, micro, api.APIVersion, planar.CPUAuto.Resolve())
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: planartool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  resize     -in input.png -out output.png -w 1920 -h 1080 [-filter lanczos] [-a N] [-b N]")
	fmt.Fprintln(os.Stderr, "  convert    -in input.png -out output.tiff -depth 10 [-range full] [-dither error_diffusion]")
	fmt.Fprintln(os.Stderr, "             (codes are left-shifted into the container's 16-bit channels)")
	fmt.Fprintln(os.Stderr, "  colorspace -in input.png -out output.yuv -matrix 709 [-transfer linear] [-depth 8]")
	fmt.Fprintln(os.Stderr, "             (writes raw planar Y'CbCr, Y then Cb then Cr, row-major)")
	fmt.Fprintln(os.Stderr, "  version")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "planartool:", err)
	os.Exit(1)
}

func runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (png/jpeg/tiff)")
	outPath := fs.String("out", "", "output image")
	w := fs.Int("w", 0, "destination width")
	h := fs.Int("h", 0, "destination height")
	filter := fs.String("filter", "bicubic", "point|bilinear|bicubic|spline16|spline36|lanczos")
	paramA := fs.Float64("a", math.NaN(), "first filter shape parameter")
	paramB := fs.Float64("b", math.NaN(), "second filter shape parameter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" || *w <= 0 || *h <= 0 {
		return fmt.Errorf("resize: -in, -out, -w and -h are required")
	}

	src, srcW, srcH, err := loadPlanes(*inPath)
	if err != nil {
		return err
	}

	kind, err := filterKind(*filter)
	if err != nil {
		return err
	}

	var p api.ResizeParams
	api.ResizeParamsDefault(&p, api.APIVersion)
	p.SrcWidth, p.SrcHeight = srcW, srcH
	p.DstWidth, p.DstHeight = *w, *h
	p.PixelType = api.PixelFloat
	p.FilterType = kind
	p.FilterParamA = *paramA
	p.FilterParamB = *paramB

	f, err := api.NewResizeFilter(&p)
	if err != nil {
		return err
	}

	dst := planar.AllocBuffer(*w, *h, planar.PixelFloat, 3)
	for plane := 0; plane < 3; plane++ {
		if err := runPlane(f, src.Planes[plane], dst.Planes[plane], *w, *h); err != nil {
			return err
		}
	}
	return savePlanes(*outPath, dst, *w, *h)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (png/jpeg/tiff)")
	outPath := fs.String("out", "", "output image")
	depth := fs.Int("depth", 8, "destination bit depth (1-16)")
	rng := fs.String("range", "full", "limited|full")
	dither := fs.String("dither", "none", "none|ordered|random|error_diffusion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return fmt.Errorf("convert: -in and -out are required")
	}

	src, w, h, err := loadPlanes(*inPath)
	if err != nil {
		return err
	}

	var p api.DepthParams
	api.DepthParamsDefault(&p, api.APIVersion)
	p.Width, p.Height = w, h
	p.PixelIn = api.PixelFloat
	p.PixelOut = api.PixelWord
	p.DepthOut = *depth
	if p.RangeOut, err = rangeKind(*rng); err != nil {
		return err
	}
	if p.DitherType, err = ditherKind(*dither); err != nil {
		return err
	}

	f, err := api.NewDepthFilter(&p)
	if err != nil {
		return err
	}

	dst := planar.AllocBuffer(w, h, planar.PixelWord, 3)
	for plane := 0; plane < 3; plane++ {
		if err := runPlane(f, src.Planes[plane], dst.Planes[plane], w, h); err != nil {
			return err
		}
	}

	// Scale codes into the full 16-bit channel so viewers show something
	// sensible regardless of the chosen depth.
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	shift := 16 - *depth
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*out.Stride + x*8
			for c := 0; c < 3; c++ {
				row := dst.Planes[c].Row(y)
				code := uint16(row[x*2]) | uint16(row[x*2+1])<<8
				v := code << shift
				out.Pix[i+c*2] = uint8(v >> 8)
				out.Pix[i+c*2+1] = uint8(v)
			}
			out.Pix[i+6] = 0xFF
			out.Pix[i+7] = 0xFF
		}
	}
	return encodeImage(*outPath, out)
}

func runColorspace(args []string) error {
	fs := flag.NewFlagSet("colorspace", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image (png/jpeg/tiff)")
	outPath := fs.String("out", "", "output raw planar file")
	matrix := fs.String("matrix", "709", "709|601|2020ncl|2020cl")
	transfer := fs.String("transfer", "709", "709|linear")
	depth := fs.Int("depth", 8, "output bit depth")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return fmt.Errorf("colorspace: -in and -out are required")
	}

	src, w, h, err := loadPlanes(*inPath)
	if err != nil {
		return err
	}

	var cp api.ColorspaceParams
	api.ColorspaceParamsDefault(&cp, api.APIVersion)
	cp.Width, cp.Height = w, h
	cp.MatrixIn = api.MatrixRGB
	cp.TransferIn = api.Transfer709
	cp.PrimariesIn = api.Primaries709
	cp.PrimariesOut = api.Primaries709
	cp.PixelType = api.PixelFloat
	if cp.MatrixOut, err = matrixKind(*matrix); err != nil {
		return err
	}
	if cp.TransferOut, err = transferKind(*transfer); err != nil {
		return err
	}

	cf, err := api.NewColorspaceFilter(&cp)
	if err != nil {
		return err
	}

	yuv := planar.AllocBuffer(w, h, planar.PixelFloat, 3)
	ctx := make([]byte, cf.ContextSize())
	cf.InitContext(ctx)
	tmp := make([]byte, cf.TmpSize(0, w))
	for row := 0; row < h; row += cf.SimultaneousLines() {
		if res := api.Process(cf, ctx, src, yuv, tmp, row, 0, w); res.Code != api.StatusOK {
			return fmt.Errorf("colorspace row %d: %s", row, res.Message)
		}
	}

	// Quantize each plane; chroma planes carry the mid-range zero point.
	outFile, err := os.Create(filepath.Clean(*outPath))
	if err != nil {
		return err
	}
	defer outFile.Close()

	for plane := 0; plane < 3; plane++ {
		var dp api.DepthParams
		api.DepthParamsDefault(&dp, api.APIVersion)
		dp.Width, dp.Height = w, h
		dp.Chroma = plane > 0
		dp.PixelIn = api.PixelFloat
		dp.PixelOut = api.PixelByte
		dp.DepthOut = *depth
		df, err := api.NewDepthFilter(&dp)
		if err != nil {
			return err
		}

		dst := planar.AllocBuffer(w, h, planar.PixelByte, 1)
		if err := runPlane(df, yuv.Planes[plane], dst.Planes[0], w, h); err != nil {
			return err
		}
		for y := 0; y < h; y++ {
			if _, err := outFile.Write(dst.Planes[0].Row(y)[:w]); err != nil {
				return err
			}
		}
	}
	return nil
}

// runPlane drives one filter over a single source plane into a destination
// plane, row by row, the way a streaming host would: the declared row
// dependencies are checked to stay monotonic while sliding forward.
func runPlane(f planar.Filter, src, dst planar.Plane, width, height int) error {
	s := &planar.Buffer{Planes: [3]planar.Plane{src}}
	d := &planar.Buffer{Planes: [3]planar.Plane{dst}}

	ctx := make([]byte, f.ContextSize())
	f.InitContext(ctx)
	tmp := make([]byte, f.TmpSize(0, width))

	prevLast := 0
	for row := 0; row < height; row += f.SimultaneousLines() {
		_, last := f.RequiredRowRange(row)
		if last < prevLast {
			return fmt.Errorf("filter row dependencies regressed at row %d", row)
		}
		prevLast = last

		if res := api.Process(f, ctx, s, d, tmp, row, 0, width); res.Code != api.StatusOK {
			return fmt.Errorf("process row %d: %s", row, res.Message)
		}
	}
	return nil
}

// loadPlanes decodes an image and splits it into three full-range float
// planes in [0, 1].
func loadPlanes(path string) (*planar.Buffer, int, int, error) {
	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, 0, err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return nil, 0, 0, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba := image.NewNRGBA64(image.Rect(0, 0, w, h))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)

	buf := planar.AllocBuffer(w, h, planar.PixelFloat, 3)
	row := make([]float32, w)
	for c := 0; c < 3; c++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*rgba.Stride + x*8 + c*2
				row[x] = float32(uint16(rgba.Pix[i])<<8|uint16(rgba.Pix[i+1])) / 65535
			}
			planar.StoreFloatRow(buf.Planes[c].Row(y), 0, row)
		}
	}
	return buf, w, h, nil
}

func savePlanes(path string, buf *planar.Buffer, w, h int) error {
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	row := make([]float32, w)
	for c := 0; c < 3; c++ {
		for y := 0; y < h; y++ {
			planar.LoadFloatRow(buf.Planes[c].Row(y), 0, row)
			for x := 0; x < w; x++ {
				v := row[x]
				if v < 0 {
					v = 0
				} else if v > 1 {
					v = 1
				}
				code := uint16(v*65535 + 0.5)
				i := y*out.Stride + x*8 + c*2
				out.Pix[i] = uint8(code >> 8)
				out.Pix[i+1] = uint8(code)
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*out.Stride + x*8
			out.Pix[i+6] = 0xFF
			out.Pix[i+7] = 0xFF
		}
	}
	return encodeImage(path, out)
}

func encodeImage(path string, img image.Image) error {
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(out, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		return tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

func filterKind(name string) (int, error) {
	switch name {
	case "point":
		return api.ResizePoint, nil
	case "bilinear":
		return api.ResizeBilinear, nil
	case "bicubic":
		return api.ResizeBicubic, nil
	case "spline16":
		return api.ResizeSpline16, nil
	case "spline36":
		return api.ResizeSpline36, nil
	case "lanczos":
		return api.ResizeLanczos, nil
	default:
		return 0, fmt.Errorf("unknown resize filter %q", name)
	}
}

func rangeKind(name string) (int, error) {
	switch name {
	case "limited":
		return api.RangeLimited, nil
	case "full":
		return api.RangeFull, nil
	default:
		return 0, fmt.Errorf("unknown range %q", name)
	}
}

func ditherKind(name string) (int, error) {
	switch name {
	case "none":
		return api.DitherNone, nil
	case "ordered":
		return api.DitherOrdered, nil
	case "random":
		return api.DitherRandom, nil
	case "error_diffusion":
		return api.DitherErrorDiffusion, nil
	default:
		return 0, fmt.Errorf("unknown dither %q", name)
	}
}

func matrixKind(name string) (int, error) {
	switch name {
	case "rgb":
		return api.MatrixRGB, nil
	case "709":
		return api.Matrix709, nil
	case "601":
		return api.Matrix170M, nil
	case "2020ncl":
		return api.Matrix2020NCL, nil
	case "2020cl":
		return api.Matrix2020CL, nil
	default:
		return 0, fmt.Errorf("unknown matrix %q", name)
	}
}

func transferKind(name string) (int, error) {
	switch name {
	case "709":
		return api.Transfer709, nil
	case "linear":
		return api.TransferLinear, nil
	default:
		return 0, fmt.Errorf("unknown transfer %q", name)
	}
}
