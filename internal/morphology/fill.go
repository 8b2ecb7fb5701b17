package morphology

// FillHoles sets every false pixel that cannot reach the image border
// through 4-connected false pixels. The input is not modified.
func FillHoles(m *Mask) *Mask {
	w, h := m.Width, m.Height
	out := m.Clone()
	if w == 0 || h == 0 {
		return out
	}

	outside := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))

	seed := func(x, y int) {
		i := y*w + x
		if !m.Pix[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		if x > 0 {
			seed(x-1, y)
		}
		if x < w-1 {
			seed(x+1, y)
		}
		if y > 0 {
			seed(x, y-1)
		}
		if y < h-1 {
			seed(x, y+1)
		}
	}

	for i := range out.Pix {
		if !outside[i] {
			out.Pix[i] = true
		}
	}
	return out
}
