package models

type MLocation struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MCamera struct {
	Z     int `json:"z"`
	Yaw   int `json:"yaw"`
	Scale int `json:"scale"`
}

type MPlayer struct {
	LoggedIn bool      `json:"loggedIn"`
	Location MLocation `json:"location"`
	Camera   MCamera   `json:"camera"`
}
