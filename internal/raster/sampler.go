package raster

import "image"

// SampleTexture performs bilinear filtering with UV wrapping. v = 1 is the
// top row of the image, matching the sphere's UV layout. Accesses tex.Pix
// directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	u = wrap(u)
	v = 1 - wrap(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for c := 0; c < 4; c++ {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 +
			float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		out[c] = uint8(f + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// wrap maps t into [0, 1]; exact integers other than 0 map to 1 so that
// u = 1 and v = 1 address the last texel rather than the first.
func wrap(t float64) float64 {
	f := t - float64(int(t))
	if f < 0 {
		f += 1
	}
	if f == 0 && t != 0 {
		return 1
	}
	return f
}
