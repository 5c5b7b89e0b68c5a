package fixture

import (
	"github.com/dinildamsith/game-explorer/internal/domain/refs"
)

var genres = []refs.Genre{
	{Reference: refs.Reference{ID: 4, Name: "Action", Slug: "action"}},
	{Reference: refs.Reference{ID: 5, Name: "RPG", Slug: "role-playing-games-rpg"}},
	{Reference: refs.Reference{ID: 3, Name: "Adventure", Slug: "adventure"}},
	{Reference: refs.Reference{ID: 10, Name: "Strategy", Slug: "strategy"}},
	{Reference: refs.Reference{ID: 2, Name: "Shooter", Slug: "shooter"}},
	{Reference: refs.Reference{ID: 51, Name: "Indie", Slug: "indie"}},
}

var platforms = []refs.Platform{
	{Reference: refs.Reference{ID: 4, Name: "PC", Slug: "pc"}, YearStart: 1981},
	{Reference: refs.Reference{ID: 187, Name: "PlayStation 5", Slug: "playstation5"}, YearStart: 2020},
	{Reference: refs.Reference{ID: 186, Name: "Xbox Series S/X", Slug: "xbox-series-x"}, YearStart: 2020},
	{Reference: refs.Reference{ID: 7, Name: "Nintendo Switch", Slug: "nintendo-switch"}, YearStart: 2017},
}

var stores = []refs.Store{
	{Reference: refs.Reference{ID: 1, Name: "Steam", Slug: "steam"}, Domain: "store.steampowered.com"},
	{Reference: refs.Reference{ID: 3, Name: "PlayStation Store", Slug: "playstation-store"}, Domain: "store.playstation.com"},
	{Reference: refs.Reference{ID: 2, Name: "Xbox Store", Slug: "xbox-store"}, Domain: "microsoft.com"},
	{Reference: refs.Reference{ID: 6, Name: "Nintendo Store", Slug: "nintendo"}, Domain: "nintendo.com"},
	{Reference: refs.Reference{ID: 5, Name: "GOG", Slug: "gog"}, Domain: "gog.com"},
}

var tags = []refs.Tag{
	{Reference: refs.Reference{ID: 31, Name: "Singleplayer", Slug: "singleplayer"}, Language: "eng"},
	{Reference: refs.Reference{ID: 7, Name: "Multiplayer", Slug: "multiplayer"}, Language: "eng"},
	{Reference: refs.Reference{ID: 36, Name: "Open World", Slug: "open-world"}, Language: "eng"},
	{Reference: refs.Reference{ID: 18, Name: "Co-op", Slug: "co-op"}, Language: "eng"},
}

var creators = []refs.Creator{
	{Reference: refs.Reference{ID: 1, Name: "Ada Park", Slug: "ada-park"}, Positions: []refs.Position{{ID: 1, Name: "director", Slug: "director"}}},
	{Reference: refs.Reference{ID: 2, Name: "Rui Santos", Slug: "rui-santos"}, Positions: []refs.Position{{ID: 2, Name: "composer", Slug: "composer"}}},
	{Reference: refs.Reference{ID: 3, Name: "Mina Okafor", Slug: "mina-okafor"}, Positions: []refs.Position{{ID: 3, Name: "writer", Slug: "writer"}, {ID: 1, Name: "director", Slug: "director"}}},
}

// seed describes one fixture game; references are by slug or id into the tables above.
type seed struct {
	id         int
	name       string
	released   string
	rating     float64
	metacritic int
	added      int
	genres     []string
	platforms  []int
	stores     []int
	tags       []string
	image      bool
	series     int
}

var seeds = []seed{
	{12345, "Ashen Crown", "2021-03-04", 4.6, 91, 9100, []string{"action", "role-playing-games-rpg"}, []int{4, 187}, []int{1, 3}, []string{"singleplayer", "open-world"}, true, 1},
	{12346, "Ashen Crown II", "2023-10-12", 4.4, 88, 7200, []string{"action", "role-playing-games-rpg"}, []int{4, 187, 186}, []int{1, 3, 2}, []string{"singleplayer", "open-world"}, true, 1},
	{12347, "Ashen Crown: Embers", "2024-02-20", 4.1, 80, 3100, []string{"role-playing-games-rpg"}, []int{4}, []int{1}, []string{"singleplayer"}, false, 1},
	{20001, "Harbor Lights", "2019-07-30", 4.2, 85, 5400, []string{"adventure", "indie"}, []int{4, 7}, []int{1, 6, 5}, []string{"singleplayer"}, true, 0},
	{20002, "Iron Vanguard", "2022-11-08", 3.9, 78, 8800, []string{"shooter", "action"}, []int{4, 187, 186}, []int{1, 3, 2}, []string{"multiplayer", "co-op"}, true, 0},
	{20003, "Tidewatch", "2020-05-14", 4.0, 82, 2600, []string{"strategy"}, []int{4}, []int{1, 5}, []string{"singleplayer", "multiplayer"}, true, 0},
	{20004, "Lantern Keep", "2018-09-21", 3.7, 74, 1900, []string{"indie", "adventure"}, []int{4, 7}, []int{1, 6}, []string{"singleplayer"}, false, 0},
	{20005, "Starfall Legion", "2024-06-01", 4.3, 87, 6100, []string{"strategy", "shooter"}, []int{4, 186}, []int{1, 2}, []string{"multiplayer"}, true, 0},
	{20006, "Moss & Marrow", "2017-04-11", 4.5, 90, 4300, []string{"role-playing-games-rpg", "indie"}, []int{4, 7}, []int{1, 5, 6}, []string{"singleplayer", "open-world"}, true, 0},
	{20007, "Quiet Orbit", "2016-02-02", 3.5, 70, 1200, []string{"adventure"}, []int{4}, []int{1}, []string{"singleplayer"}, true, 0},
	{20008, "Redline Circuit", "2021-08-19", 3.8, 76, 3900, []string{"action"}, []int{187, 186}, []int{3, 2}, []string{"multiplayer", "co-op"}, true, 0},
	{20009, "Paper Kingdoms", "2022-01-27", 4.1, 83, 2800, []string{"strategy", "indie"}, []int{4, 7}, []int{1, 6}, []string{"singleplayer"}, true, 0},
	{20010, "Glass Tundra", "2023-03-03", 4.2, 84, 3500, []string{"adventure", "action"}, []int{4, 187}, []int{1, 3}, []string{"open-world"}, true, 0},
	{20011, "Night Cartographer", "2020-10-30", 4.4, 89, 4700, []string{"role-playing-games-rpg", "adventure"}, []int{4, 186}, []int{1, 2, 5}, []string{"singleplayer", "open-world"}, true, 0},
	{20012, "Hollow Signal", "2019-12-05", 3.6, 72, 1500, []string{"shooter", "indie"}, []int{4}, []int{1}, []string{"co-op"}, false, 0},
	{20013, "Verdant Siege", "2024-09-17", 4.0, 81, 2200, []string{"strategy", "action"}, []int{4, 187}, []int{1, 3}, []string{"multiplayer"}, true, 0},
}

// additions maps a base game id to its DLC ids.
var additions = map[int][]int{
	12345: {12347},
}
