package enka

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"artimentor/internal/roster"
)

// PlayerInfo is the showcase owner's public profile.
type PlayerInfo struct {
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	WorldLevel int    `json:"worldLevel"`
}

// Showcase is a parsed public showcase: the player profile, canonical
// roster rows for every showcased character, and the untouched payload
// for archiving.
type Showcase struct {
	Player     PlayerInfo
	Characters []roster.RawCharacter
	Raw        json.RawMessage
}

// Records normalizes the showcase rows into strict roster records.
func (s *Showcase) Records(table *roster.ReferenceTable) []roster.CharacterRecord {
	return roster.Normalize(s.Characters, table)
}

type showcasePayload struct {
	PlayerInfo     PlayerInfo   `json:"playerInfo"`
	AvatarInfoList []avatarInfo `json:"avatarInfoList"`
}

type avatarInfo struct {
	AvatarID int `json:"avatarId"`
	PropMap  map[string]struct {
		Val string `json:"val"`
	} `json:"propMap"`
	FightPropMap map[string]float64 `json:"fightPropMap"`
	EquipList    []equipItem        `json:"equipList"`
}

type equipItem struct {
	Reliquary *struct {
		Level int `json:"level"`
	} `json:"reliquary"`
	Weapon *struct {
		Level    int            `json:"level"`
		AffixMap map[string]int `json:"affixMap"`
	} `json:"weapon"`
	Flat struct {
		EquipType         string     `json:"equipType"`
		SetID             int        `json:"setId"`
		Icon              string     `json:"icon"`
		ReliquaryMainstat *statEntry `json:"reliquaryMainstat"`
		ReliquarySubstats []subEntry `json:"reliquarySubstats"`
		WeaponStats       []subEntry `json:"weaponStats"`
	} `json:"flat"`
}

type statEntry struct {
	MainPropID string  `json:"mainPropId"`
	StatValue  float64 `json:"statValue"`
}

type subEntry struct {
	AppendPropID string  `json:"appendPropId"`
	StatValue    float64 `json:"statValue"`
}

// ParseShowcase converts a raw showcase payload into canonical roster
// rows. An empty showcase (characters hidden) is an error because every
// downstream consumer needs at least one build.
func ParseShowcase(data []byte) (*Showcase, error) {
	var payload showcasePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse showcase payload: %w", err)
	}
	if len(payload.AvatarInfoList) == 0 {
		return nil, fmt.Errorf("no showcased characters (showcase may be private)")
	}

	table, err := roster.Reference()
	if err != nil {
		return nil, err
	}

	showcase := &Showcase{
		Player: payload.PlayerInfo,
		Raw:    json.RawMessage(data),
	}
	for i := range payload.AvatarInfoList {
		showcase.Characters = append(showcase.Characters, parseAvatar(&payload.AvatarInfoList[i], table))
	}
	return showcase, nil
}

func parseAvatar(avatar *avatarInfo, table *roster.ReferenceTable) roster.RawCharacter {
	name, ok := table.NameByID(avatar.AvatarID)
	if !ok {
		name = fmt.Sprintf("ID_%d", avatar.AvatarID)
	}

	level := 0
	if prop, ok := avatar.PropMap["4001"]; ok {
		if n, err := strconv.Atoi(prop.Val); err == nil {
			level = n
		}
	}

	props := avatar.FightPropMap
	element, elemBonus := elementBonus(props)

	er := props["23"]
	if er == 0 {
		er = 1
	}

	artifacts, totalCV := parseArtifacts(avatar.EquipList, name)

	stats := map[string]any{
		"Character":   name,
		"Level":       level,
		"HP":          math.Round(props["2000"]),
		"ATK":         math.Round(props["2001"]),
		"DEF":         math.Round(props["2002"]),
		"EM":          math.Round(props["28"]),
		"ER%":         round1(er * 100),
		"Crit_Rate%":  round1(props["20"] * 100),
		"Crit_DMG%":   round1(props["22"] * 100),
		"Element":     element,
		"Elem_Bonus%": elemBonus,
		"Total_CV":    round1(totalCV),
	}
	if weapon := parseWeapon(avatar.EquipList); weapon != nil {
		stats["Weapon"] = weapon.Icon
		stats["Weapon_Level"] = weapon.Level
		stats["Weapon_Refine"] = weapon.Refinement
		stats["Weapon_Base_ATK"] = weapon.BaseATK
		if weapon.Substat != "" {
			stats["Weapon_Substat"] = fmt.Sprintf("%s %v", weapon.Substat, weapon.SubstatValue)
		}
	}

	return roster.RawCharacter{Stats: stats, Artifacts: artifacts}
}

// elementBonus returns the first positive elemental damage bonus and its
// element. Physical has no code here and never qualifies.
func elementBonus(props map[string]float64) (string, float64) {
	for _, p := range elementBonusProps {
		if v := props[p.code]; v > 0 {
			return p.element, round1(v * 100)
		}
	}
	return "N/A", 0
}

func parseArtifacts(equips []equipItem, owner string) ([]map[string]any, float64) {
	var artifacts []map[string]any
	var totalCV float64

	for i := range equips {
		eq := &equips[i]
		if eq.Reliquary == nil {
			continue
		}

		art := map[string]any{
			"Character": owner,
			"Slot":      slotName(eq.Flat.EquipType),
			"Set":       setName(eq.Flat.SetID),
			"Level":     fmt.Sprintf("+%d", eq.Reliquary.Level-1),
		}
		if ms := eq.Flat.ReliquaryMainstat; ms != nil {
			art["Main_Stat"] = formatProp(ms.MainPropID)
			art["Main_Value"] = ms.StatValue
		}

		var critRate, critDMG float64
		for j, sub := range eq.Flat.ReliquarySubstats {
			if j >= 4 {
				break
			}
			art[fmt.Sprintf("Sub%d", j+1)] = formatProp(sub.AppendPropID)
			art[fmt.Sprintf("Sub%d_Val", j+1)] = sub.StatValue
			switch sub.AppendPropID {
			case "FIGHT_PROP_CRITICAL":
				critRate = sub.StatValue
			case "FIGHT_PROP_CRITICAL_HURT":
				critDMG = sub.StatValue
			}
		}

		cv := round1(critRate*2 + critDMG)
		art["Crit_Value"] = cv
		totalCV += cv
		artifacts = append(artifacts, art)
	}
	return artifacts, totalCV
}

// weaponInfo is the equipped weapon extracted from the equip list.
type weaponInfo struct {
	Icon         string
	Level        int
	Refinement   int
	BaseATK      float64
	Substat      string
	SubstatValue float64
}

func parseWeapon(equips []equipItem) *weaponInfo {
	for i := range equips {
		eq := &equips[i]
		if eq.Weapon == nil {
			continue
		}

		info := &weaponInfo{
			Icon:       eq.Flat.Icon,
			Level:      eq.Weapon.Level,
			Refinement: 1,
		}
		for _, affix := range eq.Weapon.AffixMap {
			info.Refinement = affix + 1
			break
		}
		for _, stat := range eq.Flat.WeaponStats {
			if stat.AppendPropID == "FIGHT_PROP_BASE_ATTACK" {
				info.BaseATK = stat.StatValue
			} else {
				info.Substat = formatProp(stat.AppendPropID)
				info.SubstatValue = stat.StatValue
			}
		}
		return info
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
