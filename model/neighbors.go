package model

// CountNeighbors counts the living cells in the Moore neighbourhood of (x, y)
func CountNeighbors(g *Grid, mode Boundary, x, y int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return countNeighbors(g.cells, g.width, g.height, mode, x, y)
}

func countNeighbors(cells []uint8, width, height int, mode Boundary, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if mode == Toroidal {
				nx = (nx%width + width) % width
				ny = (ny%height + height) % height
			} else if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			count += int(cells[ny*width+nx])
		}
	}
	return count
}
