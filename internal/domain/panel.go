package domain

// ComponentNode es una vista generica de un componente interactivo ya
// renderizado: identificador opcional + hijos. Independiente de discordgo
// para poder testear el scan de paneles sin transporte.
type ComponentNode struct {
	CustomID string
	Children []ComponentNode
}

// HasControl recorre el arbol y dice si algun nodo lleva customID.
func HasControl(nodes []ComponentNode, customID string) bool {
	for _, n := range nodes {
		if n.CustomID == customID {
			return true
		}
		if HasControl(n.Children, customID) {
			return true
		}
	}
	return false
}
