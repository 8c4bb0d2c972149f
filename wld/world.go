// Package wld decodes world save files into an in-memory model.
package wld

import (
	"strings"

	"github.com/eak1mov/go-libworld/defs"
	"github.com/eak1mov/go-libworld/tile"
	"github.com/eak1mov/go-libworld/wld/spec"
)

type Item struct {
	Stack  int
	ID     int
	Prefix int

	// Names are filled from the registry, empty when unknown.
	Name       string
	PrefixName string
}

type Chest struct {
	X, Y  int
	Name  string
	Items []Item
}

type Sign struct {
	Text string
	X, Y int
}

type NPCKind uint8

const (
	NPCTown NPCKind = iota
	NPCAmbient
)

type NPC struct {
	Kind     NPCKind
	Title    string
	Name     string
	X, Y     float32
	Homeless bool
	HomeX    int
	HomeY    int

	// Head and Sprite come from the registry, 0 when unknown.
	Head   int
	Sprite int
}

type EntityKind uint8

const (
	EntityTrainingDummy EntityKind = iota
	EntityItemFrame
	EntityLogicSensor
)

// Entity is a tile entity. Which of the payload fields are meaningful
// depends on Kind.
type Entity struct {
	Kind EntityKind
	ID   int
	X, Y int

	// training dummy
	NPC int

	// item frame
	Item   int
	Prefix int
	Stack  int

	// logic sensor
	Sensor int
	On     bool
}

type PressurePlate struct {
	X, Y int
}

// Room is a town NPC housing assignment.
type Room struct {
	NPC  int
	X, Y int
}

type World struct {
	Version  int
	Revision uint32
	Header   *spec.Header
	Tiles    *tile.Grid

	Chests         []Chest
	Signs          []Sign
	NPCs           []NPC
	Entities       []Entity
	PressurePlates []PressurePlate
	Rooms          []Room
}

func (w *World) Size() (int, int) {
	return w.Tiles.Size()
}

func (w *World) At(x, y int) *tile.Tile {
	return w.Tiles.At(x, y)
}

// FindItem returns the chests holding an item whose name contains query,
// ignoring case.
func (w *World) FindItem(query string) []*Chest {
	query = strings.ToLower(query)
	var found []*Chest
	for i := range w.Chests {
		for _, item := range w.Chests[i].Items {
			if item.Name != "" && strings.Contains(strings.ToLower(item.Name), query) {
				found = append(found, &w.Chests[i])
				break
			}
		}
	}
	return found
}

type Kill struct {
	Banner int
	Title  string
	Count  int
}

// Kills pairs the killCount header array with the NPCs owning each banner.
// Banners without a known NPC are skipped.
func (w *World) Kills(reg *defs.Registry) []Kill {
	counts, ok := w.Header.Lookup("killCount")
	if !ok {
		return nil
	}
	var kills []Kill
	for banner, count := range counts.Values() {
		npc, ok := reg.NPCByBanner(banner)
		if !ok {
			continue
		}
		kills = append(kills, Kill{Banner: banner, Title: npc.Title, Count: count.Int()})
	}
	return kills
}
