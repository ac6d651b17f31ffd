package drake

// objectLessOrEqual reports whether a should sort before or at the same
// position as b. The key, ascending: z-index, effective shader id, texture
// id, then — for two lines only — curve mode and stroke width, and finally
// a component-wise clip rectangle comparison. Using <= at the final tier
// keeps the bottom-up merge sort stable, so objects with identical keys
// retain insertion order.
func objectLessOrEqual(a, b *Object) bool {
	if a.ZIndex != b.ZIndex {
		return a.ZIndex < b.ZIndex
	}

	shaderA := a.effectiveShader()
	shaderB := b.effectiveShader()
	if shaderA != shaderB {
		return shaderA < shaderB
	}

	if a.TextureID != b.TextureID {
		return a.TextureID < b.TextureID
	}

	lineA, aIsLine := a.Shape.(LineShape)
	lineB, bIsLine := b.Shape.(LineShape)
	if aIsLine && bIsLine {
		if lineA.Mode != lineB.Mode {
			return lineA.Mode < lineB.Mode
		}
		if lineA.Width != lineB.Width {
			return lineA.Width < lineB.Width
		}
	}

	return clipLessOrEqual(a.clip, b.clip)
}

// clipLessOrEqual orders clip rectangles component by component, mirroring a
// byte-wise comparison of the four floats.
func clipLessOrEqual(a, b Rect) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	return a.Height <= b.Height
}

// resort fully re-sorts the pool when the dirty flag is set, then rebuilds
// the id→slot map and clears the flag. Bottom-up merge sort with a reusable
// scratch buffer: stable and zero allocations once the buffer reaches its
// high-water mark.
func (s *store) resort(scratch *[]Object) {
	if !s.needsSort {
		return
	}

	n := len(s.objects)
	if n > 1 {
		if cap(*scratch) < n {
			*scratch = make([]Object, n)
		}
		buf := (*scratch)[:n]

		a := s.objects
		b := buf
		swapped := false

		for width := 1; width < n; width *= 2 {
			for i := 0; i < n; i += 2 * width {
				lo := i
				mid := min(lo+width, n)
				hi := min(lo+2*width, n)
				mergeRun(a, b, lo, mid, hi)
			}
			a, b = b, a
			swapped = !swapped
		}

		if swapped {
			copy(s.objects, buf)
		}
	}

	s.rebuildIndex()
	s.needsSort = false
}

func mergeRun(src, dst []Object, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if objectLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// sameBatch reports whether b can extend a batch started by a: both visible,
// same effective shader, texture, and byte-exact clip rectangle — plus, for
// two lines, the same curve mode and stroke width.
func sameBatch(a, b *Object) bool {
	if !b.Visible {
		return false
	}
	if a.effectiveShader() != b.effectiveShader() {
		return false
	}
	if a.TextureID != b.TextureID {
		return false
	}
	if a.clip != b.clip {
		return false
	}

	lineA, aIsLine := a.Shape.(LineShape)
	lineB, bIsLine := b.Shape.(LineShape)
	if aIsLine && bIsLine {
		if lineA.Mode != lineB.Mode || lineA.Width != lineB.Width {
			return false
		}
	}
	return true
}
