package main

import "eviden-bot/internal/entity"

var segments = []*entity.Segment{
	{Id: 1, DisplayName: "JT.01 - JT.02"},
	{Id: 2, DisplayName: "JT.02 - JT.03"},
	{Id: 3, DisplayName: "JT.03 - JT.04"},
	{Id: 4, DisplayName: "ODC-KBY-FA - ODP-KBY-FA/01"},
}

var designators = []*entity.Designator{
	{Code: "DC-OF-SM-48D", DisplayName: "DC-OF-SM-48D", Description: "Penarikan kabel duct fiber optik single mode 48 core"},
	{Code: "AC-OF-SM-24D", DisplayName: "AC-OF-SM-24D", Description: "Penarikan kabel udara fiber optik single mode 24 core"},
	{Code: "PU-S7.0-400NM", DisplayName: "PU-S7.0-400NM", Description: "Pemasangan tiang besi 7 meter"},
	{Code: "PU-AS-HL", DisplayName: "PU-AS-HL", Description: "Pemasangan aksesoris tiang helical"},
	{Code: "OS-SM-1", DisplayName: "OS-SM-1", Description: "Penyambungan kabel fiber optik single mode"},
}
