// Package catalog holds the fixed list of purchasable cosmetic tags.
// A Catalog is built once at startup and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Item is one purchasable tag.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cost   int64  `json:"cost"`
	Rarity Rarity `json:"rarity"`
}

type Catalog struct {
	items []Item
	byID  map[string]Item
}

// New validates items and builds a Catalog. Ids must be unique, costs
// positive and rarities known.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: slices.Clone(items),
		byID:  make(map[string]Item, len(items)),
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, errors.New("catalog: empty item id")
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item id %q", it.ID)
		}
		if it.Cost <= 0 {
			return nil, fmt.Errorf("catalog: item %q has non-positive cost %d", it.ID, it.Cost)
		}
		if !slices.Contains(rarities, it.Rarity) {
			return nil, fmt.Errorf("catalog: item %q has unknown rarity %q", it.ID, it.Rarity)
		}
		c.byID[it.ID] = it
	}
	return c, nil
}

// Items returns a copy of the catalog in its stable order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Default returns the stock catalog of 20 green tags.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultItems = []Item{
	{ID: "green-1", Name: "Green Sprout", Cost: 10, Rarity: RarityCommon},
	{ID: "green-2", Name: "Leaf Collector", Cost: 20, Rarity: RarityCommon},
	{ID: "green-3", Name: "Eco Friend", Cost: 30, Rarity: RarityCommon},
	{ID: "green-4", Name: "Tree Hugger", Cost: 40, Rarity: RarityUncommon},
	{ID: "green-5", Name: "Recycle Pro", Cost: 50, Rarity: RarityUncommon},
	{ID: "green-6", Name: "Compost King", Cost: 60, Rarity: RarityUncommon},
	{ID: "green-7", Name: "Sustain Guru", Cost: 75, Rarity: RarityRare},
	{ID: "green-8", Name: "Planet Pal", Cost: 90, Rarity: RarityRare},
	{ID: "green-9", Name: "Forest Friend", Cost: 110, Rarity: RarityRare},
	{ID: "green-10", Name: "Eco Guardian", Cost: 140, Rarity: RarityEpic},
	{ID: "green-11", Name: "Green Baron", Cost: 180, Rarity: RarityEpic},
	{ID: "green-12", Name: "Leaf Knight", Cost: 220, Rarity: RarityLegendary},
	{ID: "green-13", Name: "The Great Tree", Cost: 300, Rarity: RarityLegendary},
	{ID: "green-14", Name: "Green Emperor", Cost: 350, Rarity: RarityLegendary},
	{ID: "green-15", Name: "Sapling Star", Cost: 25, Rarity: RarityCommon},
	{ID: "green-16", Name: "Branch Buddy", Cost: 35, Rarity: RarityCommon},
	{ID: "green-17", Name: "Garden Guru", Cost: 55, Rarity: RarityUncommon},
	{ID: "green-18", Name: "Earth Ally", Cost: 95, Rarity: RarityRare},
	{ID: "green-19", Name: "Nature Noble", Cost: 160, Rarity: RarityEpic},
	{ID: "green-20", Name: "Verdant Voice", Cost: 250, Rarity: RarityLegendary},
}
