package models

import (
	"github.com/gosimple/slug"
)

// FishType is a static catalog entry. Key is the canonical slug used in
// collection maps and catch records; Weight drives the rarity-weighted pick.
type FishType struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Value  int64  `json:"value"`
	Weight int    `json:"-"`
}

func fish(name, rarity string, value int64, weight int) FishType {
	return FishType{Key: slug.Make(name), Name: name, Rarity: rarity, Value: value, Weight: weight}
}

// FishCatalog mirrors the five original fish types; weights skew the draw
// toward commons while keeping every tier reachable.
var FishCatalog = []FishType{
	fish("Red Fish", "common", 10, 40),
	fish("Blue Fish", "uncommon", 15, 28),
	fish("Golden Fish", "rare", 25, 18),
	fish("Ghost Fish", "epic", 40, 10),
	fish("Crown Fish", "legendary", 75, 4),
}

// CatalogWeightSum is the denominator for a weighted draw over FishCatalog.
var CatalogWeightSum = func() int {
	total := 0
	for _, f := range FishCatalog {
		total += f.Weight
	}
	return total
}()

// PickFish maps a roll in [0, CatalogWeightSum) onto a catalog entry.
func PickFish(roll int) FishType {
	for _, f := range FishCatalog {
		if roll < f.Weight {
			return f
		}
		roll -= f.Weight
	}
	return FishCatalog[len(FishCatalog)-1]
}

// FindFish resolves a catalog entry by its slug key.
func FindFish(key string) (FishType, bool) {
	for _, f := range FishCatalog {
		if f.Key == key {
			return f, true
		}
	}
	return FishType{}, false
}

// ShopItem is a purchasable item. ID is the slug of the display name, so
// "Golden Rod", "golden rod" and "golden-rod" all resolve to the same item.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func item(name string, price int64, description string) ShopItem {
	return ShopItem{ID: slug.Make(name), Name: name, Price: price, Description: description}
}

var ShopCatalog = []ShopItem{
	item("Golden Rod", 100, "Catch in style"),
	item("Fish Tank", 200, "A cozy home for your fish"),
	item("Fish Crown", 500, "Become fish royalty"),
}

// FindShopItem resolves a shop item from user input of any casing/spacing.
func FindShopItem(input string) (ShopItem, bool) {
	key := slug.Make(input)
	for _, it := range ShopCatalog {
		if it.ID == key {
			return it, true
		}
	}
	return ShopItem{}, false
}
