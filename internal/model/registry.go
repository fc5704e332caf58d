package model

// All lists every table owned by the bot, in migration order.
func All() []interface{} {
	return []interface{}{
		&SegmentasiJalur{},
		&Designator{},
		&BotSession{},
		&RekapData{},
	}
}
