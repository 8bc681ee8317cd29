// Package leaderboard fetches ranked build benchmarks from akasha.cv.
package leaderboard

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"
)

// calcIDRe matches valid akasha calculation IDs.
var calcIDRe = regexp.MustCompile(`^\d{5,}$`)

// ValidCalculationID reports whether s looks like an akasha calculation ID.
func ValidCalculationID(s string) bool {
	return calcIDRe.MatchString(strings.TrimSpace(s))
}

// flexValue decodes either a bare number or a {"value": N} wrapper, both
// of which appear in akasha stat payloads.
type flexValue struct {
	Value float64
	Set   bool
}

func (f *flexValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value, f.Set = n, true
		return nil
	}
	var wrapped struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Value != nil {
		f.Value, f.Set = *wrapped.Value, true
		return nil
	}
	// Null or unexpected shape reads as absent rather than failing the
	// whole document.
	f.Value, f.Set = 0, false
	return nil
}

// Entry is one ranked build from a leaderboard.
type Entry struct {
	Rank      int      `json:"Rank"`
	Player    string   `json:"Player"`
	UID       string   `json:"UID"`
	Region    string   `json:"Region"`
	Weapon    string   `json:"Weapon"`
	Refine    *int     `json:"Refine"`
	HP        float64  `json:"HP"`
	ATK       float64  `json:"ATK"`
	DEF       float64  `json:"DEF"`
	EM        float64  `json:"EM"`
	ER        float64  `json:"ER"`
	CritRate  float64  `json:"Crit_Rate"`
	CritDMG   float64  `json:"Crit_DMG"`
	ElemBonus *float64 `json:"Elem_Bonus"`
	DMGResult float64  `json:"DMG_Result"`
}

// rawEntry is the akasha wire shape.
type rawEntry struct {
	Index int    `json:"index"`
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Owner struct {
		Nickname string `json:"nickname"`
		Region   string `json:"region"`
	} `json:"owner"`
	Weapon struct {
		Name       string `json:"name"`
		WeaponInfo struct {
			RefinementLevel *flexValue `json:"refinementLevel"`
		} `json:"weaponInfo"`
	} `json:"weapon"`
	Stats map[string]flexValue `json:"stats"`

	// The calculation result lives under one of three keys depending on
	// leaderboard vintage.
	Leaderboard *struct {
		Result flexValue `json:"result"`
	} `json:"Leaderboard"`
	CalcLower *struct {
		Result flexValue `json:"result"`
	} `json:"calculation"`
	CalcUpper *struct {
		Result flexValue `json:"result"`
	} `json:"Calculation"`
}

func (r *rawEntry) result() float64 {
	switch {
	case r.Leaderboard != nil:
		return r.Leaderboard.Result.Value
	case r.CalcLower != nil:
		return r.CalcLower.Result.Value
	case r.CalcUpper != nil:
		return r.CalcUpper.Result.Value
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r *rawEntry) toEntry() Entry {
	e := Entry{
		Rank:      r.Index,
		Player:    r.Owner.Nickname,
		UID:       r.UID,
		Region:    r.Owner.Region,
		Weapon:    r.Weapon.Name,
		HP:        math.Round(r.Stats["maxHp"].Value),
		ATK:       math.Round(r.Stats["atk"].Value),
		DEF:       math.Round(r.Stats["def"].Value),
		EM:        math.Round(r.Stats["elementalMastery"].Value),
		ER:        round2(r.Stats["energyRecharge"].Value * 100),
		CritRate:  round2(r.Stats["critRate"].Value * 100),
		CritDMG:   round2(r.Stats["critDamage"].Value * 100),
		DMGResult: math.Round(r.result()),
	}

	if rl := r.Weapon.WeaponInfo.RefinementLevel; rl != nil && rl.Set {
		refine := int(rl.Value) + 1
		e.Refine = &refine
	}

	// Elemental bonus key varies per element; physical is excluded.
	// Sort for a stable pick when several bonus keys are present.
	keys := make([]string, 0, len(r.Stats))
	for key := range r.Stats {
		if strings.Contains(key, "DamageBonus") && key != "physicalDamageBonus" {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		bonus := round2(r.Stats[keys[0]].Value * 100)
		e.ElemBonus = &bonus
	}
	return e
}
