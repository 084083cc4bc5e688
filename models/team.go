package models

// Team is one of the three sides of a tournament. Player membership is
// exclusive within a tournament: a player belongs to at most one team.
type Team struct {
	ID      string   `json:"id" bson:"id"`
	Name    string   `json:"name" bson:"name"`
	Color   string   `json:"color" bson:"color"`
	Players []string `json:"players" bson:"players"`
}

// HasPlayer reports whether the player is on this team.
func (t *Team) HasPlayer(playerID string) bool {
	for _, id := range t.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

// TeamKit is a preset name/color pair used when setting up teams.
type TeamKit struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// DefaultKits are the traditional kits; a new tournament starts with the
// first three.
var DefaultKits = []TeamKit{
	{Name: "Verde", Hex: "#4CAF50"},
	{Name: "Amarelo", Hex: "#FFC107"},
	{Name: "Azul Claro", Hex: "#81D4FA"},
	{Name: "Azul SSW", Hex: "#1565C0"},
}

// ExtraColors complement the preset kit colors in the color picker.
var ExtraColors = []TeamKit{
	{Name: "Vermelho", Hex: "#f44336"},
	{Name: "Branco", Hex: "#e0e0e0"},
	{Name: "Laranja", Hex: "#FF9800"},
	{Name: "Roxo", Hex: "#9C27B0"},
	{Name: "Rosa", Hex: "#E91E63"},
}

// KnownColor reports whether hex is one of the preset or extra colors.
func KnownColor(hex string) bool {
	for _, k := range DefaultKits {
		if k.Hex == hex {
			return true
		}
	}
	for _, k := range ExtraColors {
		if k.Hex == hex {
			return true
		}
	}
	return false
}
