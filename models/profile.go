package models

// UserProfile holds the attributes collected by the coordinator form
type UserProfile struct {
	Country   string `json:"country"`
	Gender    string `json:"gender"`
	Age       int    `json:"age"`
	BodyShape string `json:"body_shape"`
	Color     string `json:"color"`
	Theme     string `json:"theme"`
	DrawStyle string `json:"draw_style"`
}
