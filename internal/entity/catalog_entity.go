package entity

type Segment struct {
	Id          int64
	DisplayName string
}

type Designator struct {
	Code        string
	DisplayName string
	Description string
}
