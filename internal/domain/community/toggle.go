package community

// Toggle aplica una reacción sobre los contadores de un post.
//
// Si la reacción pedida es la actual se quita y se descuenta. Si no, se
// descuenta la anterior (si había), se fija la nueva y se cuenta. Así cada
// viewer tiene a lo sumo una reacción activa y los contadores la reflejan.
func Toggle(c Counters, current, requested Interaction) (Counters, Interaction) {
	if current == requested {
		c = bump(c, current, -1)
		return c, InteractionNone
	}
	c = bump(c, current, -1)
	c = bump(c, requested, +1)
	return c, requested
}

func bump(c Counters, i Interaction, delta int) Counters {
	switch i {
	case InteractionLike:
		c.Likes += delta
	case InteractionDislike:
		c.Dislikes += delta
	}
	return c
}
