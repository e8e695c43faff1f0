package game

// Secret exposes the drawn number to tests in this package only.
func (g *Game) Secret() int { return g.secret }
