package enka

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"artimentor/internal/roster"
)

const fixtureShowcase = `{
	"playerInfo": {"nickname": "Traveler", "level": 60, "worldLevel": 8},
	"avatarInfoList": [
		{
			"avatarId": 10000046,
			"propMap": {"4001": {"val": "90"}},
			"fightPropMap": {
				"2000": 32499.6,
				"2001": 1180.2,
				"2002": 800.7,
				"28": 115.4,
				"23": 1.105,
				"20": 0.811,
				"22": 2.416,
				"40": 0.616
			},
			"equipList": [
				{
					"weapon": {"level": 90, "affixMap": {"115502": 0}},
					"flat": {
						"icon": "UI_EquipIcon_Pole_Homa",
						"weaponStats": [
							{"appendPropId": "FIGHT_PROP_BASE_ATTACK", "statValue": 608},
							{"appendPropId": "FIGHT_PROP_CRITICAL_HURT", "statValue": 66.2}
						]
					}
				},
				{
					"reliquary": {"level": 21},
					"flat": {
						"equipType": "EQUIP_BRACER",
						"setId": 15022,
						"reliquaryMainstat": {"mainPropId": "FIGHT_PROP_HP", "statValue": 4780},
						"reliquarySubstats": [
							{"appendPropId": "FIGHT_PROP_CRITICAL", "statValue": 7.8},
							{"appendPropId": "FIGHT_PROP_CRITICAL_HURT", "statValue": 14.8},
							{"appendPropId": "FIGHT_PROP_ATTACK_PERCENT", "statValue": 9.9},
							{"appendPropId": "FIGHT_PROP_ELEMENT_MASTERY", "statValue": 40}
						]
					}
				},
				{
					"reliquary": {"level": 17},
					"flat": {
						"equipType": "EQUIP_RING",
						"setId": 99999,
						"reliquaryMainstat": {"mainPropId": "FIGHT_PROP_FIRE_ADD_HURT", "statValue": 46.6},
						"reliquarySubstats": [
							{"appendPropId": "FIGHT_PROP_CRITICAL", "statValue": 6.2}
						]
					}
				}
			]
		}
	]
}`

func TestValidUID(t *testing.T) {
	valid := []string{"700000001", " 123456789 "}
	for _, s := range valid {
		if !ValidUID(s) {
			t.Errorf("ValidUID(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "12345678", "1234567890", "70000000a", "7000 0001"}
	for _, s := range invalid {
		if ValidUID(s) {
			t.Errorf("ValidUID(%q) = true, want false", s)
		}
	}
}

func TestParseShowcase(t *testing.T) {
	showcase, err := ParseShowcase([]byte(fixtureShowcase))
	if err != nil {
		t.Fatalf("ParseShowcase: %v", err)
	}
	if showcase.Player.Nickname != "Traveler" || showcase.Player.Level != 60 {
		t.Errorf("player info wrong: %+v", showcase.Player)
	}
	if len(showcase.Characters) != 1 {
		t.Fatalf("got %d characters, want 1", len(showcase.Characters))
	}

	stats := showcase.Characters[0].Stats
	if stats["Character"] != "Hu Tao" {
		t.Errorf("Character = %v", stats["Character"])
	}
	if stats["Level"] != 90 {
		t.Errorf("Level = %v", stats["Level"])
	}
	if stats["HP"] != 32500.0 || stats["ATK"] != 1180.0 || stats["DEF"] != 801.0 {
		t.Errorf("flat stats wrong: %v %v %v", stats["HP"], stats["ATK"], stats["DEF"])
	}
	if stats["ER%"] != 110.5 || stats["Crit_Rate%"] != 81.1 || stats["Crit_DMG%"] != 241.6 {
		t.Errorf("percent stats wrong: %v %v %v", stats["ER%"], stats["Crit_Rate%"], stats["Crit_DMG%"])
	}
	if stats["Element"] != "Pyro" || stats["Elem_Bonus%"] != 61.6 {
		t.Errorf("element wrong: %v %v", stats["Element"], stats["Elem_Bonus%"])
	}
	if stats["Weapon_Refine"] != 1 {
		t.Errorf("Weapon_Refine = %v, want 1", stats["Weapon_Refine"])
	}

	arts := showcase.Characters[0].Artifacts
	if len(arts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(arts))
	}
	flower := arts[0]
	if flower["Slot"] != "Flower" || flower["Set"] != "Crimson Witch of Flames" {
		t.Errorf("flower wrong: %v %v", flower["Slot"], flower["Set"])
	}
	if flower["Level"] != "+20" || flower["Main_Stat"] != "HP" || flower["Main_Value"] != 4780.0 {
		t.Errorf("flower main wrong: %v %v %v", flower["Level"], flower["Main_Stat"], flower["Main_Value"])
	}
	if flower["Sub1"] != "Crit Rate" || flower["Sub1_Val"] != 7.8 {
		t.Errorf("flower sub1 wrong: %v %v", flower["Sub1"], flower["Sub1_Val"])
	}
	// 7.8*2 + 14.8 = 30.4
	if flower["Crit_Value"] != 30.4 {
		t.Errorf("flower CV = %v, want 30.4", flower["Crit_Value"])
	}

	goblet := arts[1]
	if goblet["Slot"] != "Goblet" || goblet["Set"] != "Set_99999" {
		t.Errorf("goblet wrong: %v %v", goblet["Slot"], goblet["Set"])
	}
	if goblet["Main_Stat"] != "Pyro DMG%" {
		t.Errorf("goblet main = %v", goblet["Main_Stat"])
	}

	// 30.4 + 12.4 = 42.8
	if stats["Total_CV"] != 42.8 {
		t.Errorf("Total_CV = %v, want 42.8", stats["Total_CV"])
	}
}

func TestParseShowcaseUnknownAvatarKeepsIDToken(t *testing.T) {
	payload := `{
		"playerInfo": {"nickname": "X"},
		"avatarInfoList": [{"avatarId": 99999999, "fightPropMap": {}, "equipList": []}]
	}`
	showcase, err := ParseShowcase([]byte(payload))
	if err != nil {
		t.Fatalf("ParseShowcase: %v", err)
	}
	if got := showcase.Characters[0].Stats["Character"]; got != "ID_99999999" {
		t.Errorf("Character = %v, want ID_99999999", got)
	}
}

func TestParseShowcaseEmptyIsError(t *testing.T) {
	if _, err := ParseShowcase([]byte(`{"playerInfo": {"nickname": "X"}}`)); err == nil {
		t.Error("expected error for hidden showcase")
	}
}

func TestShowcaseRecords(t *testing.T) {
	showcase, err := ParseShowcase([]byte(fixtureShowcase))
	if err != nil {
		t.Fatalf("ParseShowcase: %v", err)
	}
	table, err := roster.Reference()
	if err != nil {
		t.Fatalf("Reference: %v", err)
	}
	records := showcase.Records(table)
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	rec := records[0]
	if rec.DisplayName != "Hu Tao" || rec.Element != "Pyro" || rec.Level != 90 {
		t.Errorf("record wrong: %+v", rec)
	}
	if rec.Stats.CritRate.Value != 81.1 || !rec.Stats.CritRate.Known {
		t.Errorf("crit rate = %+v", rec.Stats.CritRate)
	}
	flower := rec.ArtifactBySlot("Flower")
	if flower == nil || flower.MainValue != "4780" {
		t.Errorf("flower record wrong: %+v", flower)
	}
}

func TestFetchShowcaseStatusMapping(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status == http.StatusOK {
			fmt.Fprint(w, fixtureShowcase)
			return
		}
		w.WriteHeader(status)
	}))
	defer srv.Close()

	client := NewClientWithConfig(Config{BaseURL: srv.URL + "/api/uid/%s"})

	if _, err := client.FetchShowcase(context.Background(), "700000001"); err == nil {
		t.Error("expected not-found error")
	}

	status = http.StatusOK
	showcase, err := client.FetchShowcase(context.Background(), "700000001")
	if err != nil {
		t.Fatalf("FetchShowcase: %v", err)
	}
	if showcase.Player.Nickname != "Traveler" {
		t.Errorf("nickname = %q", showcase.Player.Nickname)
	}

	if _, err := client.FetchShowcase(context.Background(), "12345"); err == nil {
		t.Error("expected invalid UID error")
	}
}
