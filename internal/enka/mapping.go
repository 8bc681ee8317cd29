package enka

import (
	"fmt"
	"strings"
)

// equipTypeMap converts showcase equip slots to artifact slot names.
var equipTypeMap = map[string]string{
	"EQUIP_BRACER":   "Flower",
	"EQUIP_NECKLACE": "Plume",
	"EQUIP_SHOES":    "Sands",
	"EQUIP_RING":     "Goblet",
	"EQUIP_DRESS":    "Circlet",
}

// propMap converts fight prop IDs to readable stat names.
var propMap = map[string]string{
	"FIGHT_PROP_HP":                "HP",
	"FIGHT_PROP_HP_PERCENT":        "HP%",
	"FIGHT_PROP_ATTACK":            "ATK",
	"FIGHT_PROP_ATTACK_PERCENT":    "ATK%",
	"FIGHT_PROP_DEFENSE":           "DEF",
	"FIGHT_PROP_DEFENSE_PERCENT":   "DEF%",
	"FIGHT_PROP_CRITICAL":          "Crit Rate",
	"FIGHT_PROP_CRITICAL_HURT":     "Crit DMG",
	"FIGHT_PROP_CHARGE_EFFICIENCY": "ER%",
	"FIGHT_PROP_ELEMENT_MASTERY":   "EM",
	"FIGHT_PROP_HEAL_ADD":          "Healing%",
	"FIGHT_PROP_FIRE_ADD_HURT":     "Pyro DMG%",
	"FIGHT_PROP_WATER_ADD_HURT":    "Hydro DMG%",
	"FIGHT_PROP_ELEC_ADD_HURT":     "Electro DMG%",
	"FIGHT_PROP_ICE_ADD_HURT":      "Cryo DMG%",
	"FIGHT_PROP_WIND_ADD_HURT":     "Anemo DMG%",
	"FIGHT_PROP_ROCK_ADD_HURT":     "Geo DMG%",
	"FIGHT_PROP_GRASS_ADD_HURT":    "Dendro DMG%",
	"FIGHT_PROP_PHYSICAL_ADD_HURT": "Physical DMG%",
}

// setMap names the known artifact set IDs.
var setMap = map[int]string{
	15001: "Gladiator's Finale",
	15002: "Wanderer's Troupe",
	15006: "Noblesse Oblige",
	15007: "Bloodstained Chivalry",
	15008: "Maiden Beloved",
	15014: "Archaic Petra",
	15015: "Retracing Bolide",
	15016: "Tenacity of the Millelith",
	15017: "Pale Flame",
	15018: "Shimenawa's Reminiscence",
	15019: "Heart of Depth",
	15020: "Emblem of Severed Fate",
	15021: "Viridescent Venerer",
	15022: "Crimson Witch of Flames",
	15024: "Blizzard Strayer",
	15025: "Thundering Fury",
	15026: "Lavawalker",
	15027: "Desert Pavilion Chronicle",
	15028: "Flower of Paradise Lost",
	15029: "Nymph's Dream",
	15030: "Vourukasha's Glow",
	15031: "Marechaussee Hunter",
	15032: "Golden Troupe",
	15033: "Song of Days Past",
	15034: "Nighttime Whispers in the Echoing Woods",
	15035: "Fragment of Harmonic Whimsy",
	15036: "Unfinished Reverie",
	15037: "Scroll of the Hero of Cinder City",
	15038: "Obsidian Codex",
	15040: "Finale of the deep galeries",
}

// elementBonusProps maps fight prop codes to the element whose damage
// bonus they carry. The first code with a positive value decides the
// character's element bonus.
var elementBonusProps = []struct {
	code    string
	element string
}{
	{"40", "Pyro"},
	{"41", "Electro"},
	{"42", "Hydro"},
	{"43", "Dendro"},
	{"44", "Anemo"},
	{"45", "Geo"},
	{"46", "Cryo"},
}

// formatProp converts a fight prop ID to a readable stat name, stripping
// the prefix for unmapped props.
func formatProp(propID string) string {
	if name, ok := propMap[propID]; ok {
		return name
	}
	return strings.TrimPrefix(propID, "FIGHT_PROP_")
}

// slotName converts an equip type, falling back to the raw value.
func slotName(equipType string) string {
	if slot, ok := equipTypeMap[equipType]; ok {
		return slot
	}
	return equipType
}

// setName resolves an artifact set ID, producing a Set_<id> token for
// sets newer than the mapping.
func setName(setID int) string {
	if name, ok := setMap[setID]; ok {
		return name
	}
	return fmt.Sprintf("Set_%d", setID)
}
