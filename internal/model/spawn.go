package model

// ConsumableKind identifies a food buff. Values match the game client ids.
type ConsumableKind string

const (
	ConsumableEnergy           ConsumableKind = "energy"
	ConsumableSpeedUp          ConsumableKind = "speedUp"
	ConsumableRecoveryCooldown ConsumableKind = "recoveryCooldownShort"
)

// ConsumableKinds lists every concrete buff kind in table order.
var ConsumableKinds = []ConsumableKind{
	ConsumableEnergy,
	ConsumableSpeedUp,
	ConsumableRecoveryCooldown,
}

// Valid reports whether k is one of the known kinds.
func (k ConsumableKind) Valid() bool {
	for _, known := range ConsumableKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ItemClass separates birthstones from regular equipment.
type ItemClass string

const (
	ItemClassGem       ItemClass = "gem"
	ItemClassEquipment ItemClass = "equipment"
)

// ConsumableSpawn is one entry of food_spawns.json.
type ConsumableSpawn struct {
	ID                   string         `json:"id"`
	DisplayName          string         `json:"name"`
	DisplayNameLocalized string         `json:"nameJa"`
	SourceCategory       string         `json:"category"`
	Cuisine              string         `json:"cuisine"`
	FoodTypeID           ConsumableKind `json:"foodTypeId"`
	GameX                float64        `json:"gameX"`
	GameZ                float64        `json:"gameZ"`
	RealLat              float64        `json:"realLat"`
	RealLng              float64        `json:"realLng"`
}

// EquipmentSpawn is one entry of equipment_spawns.json.
type EquipmentSpawn struct {
	ID                   string    `json:"id"`
	DisplayName          string    `json:"shopName"`
	DisplayNameLocalized string    `json:"shopNameJa"`
	SourceCategory       string    `json:"shopCategory"`
	ItemClass            ItemClass `json:"itemCategory"`
	TypeID               string    `json:"typeId"`
	ItemName             string    `json:"name"`
	ItemNameLocalized    string    `json:"nameJa"`
	Effect               string    `json:"effect"`
	Value                float64   `json:"value"`
	Color                string    `json:"color"`
	Icon                 string    `json:"icon"`
	GameX                float64   `json:"gameX"`
	GameZ                float64   `json:"gameZ"`
	RealLat              float64   `json:"realLat"`
	RealLng              float64   `json:"realLng"`
}
