package detect

import "image"

// Component is one 8-connected group of set mask pixels.
type Component struct {
	Points []image.Point
	Bounds image.Rectangle
}

// Area returns the pixel count of the component.
func (c Component) Area() int { return len(c.Points) }

// components extracts 8-connected pixel groups from the mask. The scan is
// row-major, so components are returned in the order of their first pixel;
// equal input yields identical output.
func components(m *Mask) []Component {
	if m == nil || m.W <= 0 || m.H <= 0 {
		return nil
	}
	visited := make([]bool, m.W*m.H)
	var out []Component
	var stack []image.Point

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if visited[idx] || m.Pix[idx] == 0 {
				continue
			}
			comp := Component{Bounds: image.Rect(x, y, x+1, y+1)}
			stack = append(stack[:0], image.Pt(x, y))
			visited[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp.Points = append(comp.Points, p)
				comp.Bounds = comp.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
							continue
						}
						nidx := ny*m.W + nx
						if visited[nidx] || m.Pix[nidx] == 0 {
							continue
						}
						visited[nidx] = true
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
			out = append(out, comp)
		}
	}
	return out
}
