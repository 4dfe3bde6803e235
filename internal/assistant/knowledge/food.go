package knowledge

import "strings"

// FoodSpot is a nearby eating suggestion tied to a place.
type FoodSpot struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// foodSpots is static reference data keyed by display place name.
var foodSpots = map[string][]FoodSpot{
	"núi bà đen": {
		{Name: "Bánh canh Trảng Bàng Bé Năm", Note: "đặc sản Trảng Bàng"},
		{Name: "Quán Gà Hấp Hành 7 Núi", Note: "đặc sản gà hấp"},
	},
	"hồ dầu tiếng": {
		{Name: "Hải Sản Tươi Sống Hữu Lợi", Note: "tôm cá hồ rất tươi"},
		{Name: "Quán Lộc Vừng", Note: "view ngắm hoàng hôn"},
	},
	"tòa thánh cao đài": {
		{Name: "Bún riêu Bà Tám", Note: "giá rẻ, ngon"},
		{Name: "Cơm chay Tâm Đức", Note: "quán chay gần nhất"},
	},
	"làng nổi tân lập": {
		{Name: "cá lóc nướng trui", Note: "ngon quên lối về"},
		{Name: "bánh xèo", Note: "giòn rụm, ngon, trải nghiệm khó quên"},
	},
}

// FoodSpotsFor returns the ordered food suggestions for a place, or nil
// when none are known.
func FoodSpotsFor(place string) []FoodSpot {
	return foodSpots[strings.ToLower(place)]
}
