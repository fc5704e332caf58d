package model

type SegmentasiJalur struct {
	Id         int64  `gorm:"primaryKey"`
	NamaSegmen string `gorm:"type:text;not null"`
}

func (SegmentasiJalur) TableName() string {
	return "segmentasi_jalur"
}

// Designator memakai kode sebagai primary key (TEXT, bukan surrogate integer).
type Designator struct {
	Id              string `gorm:"type:varchar(64);primaryKey"`
	KodeDesignator  string `gorm:"type:text;not null"`
	UraianPekerjaan string `gorm:"type:text"`
}

func (Designator) TableName() string {
	return "designator"
}
