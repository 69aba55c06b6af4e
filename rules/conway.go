package rules

/*
NextState returns the state of a cell in the next generation.

	neighbors < 2 or > 3  dead (under/overpopulation)
	neighbors == 3        alive (birth or survival)
	neighbors == 2        unchanged
*/
func NextState(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
