package world

import "sort"

// IndependentPlayerID owns every fixture whose owner is unknown.
const IndependentPlayerID = -1

// Player is a participant in the game.
type Player struct {
	ID       int
	Name     string
	Country  string
	Portrait string
	Current  bool
}

// IsIndependent reports whether p is the independent-player sentinel.
func (p Player) IsIndependent() bool {
	return p.ID == IndependentPlayerID
}

// PlayerCollection is the roster of players on a map, keyed by ID.
//
// Invariant: at most one player is marked current.
type PlayerCollection struct {
	players map[int]*Player
}

// NewPlayerCollection returns an empty roster.
func NewPlayerCollection() *PlayerCollection {
	return &PlayerCollection{players: make(map[int]*Player)}
}

// Add registers p, replacing any player with the same ID.
//
// Postcondition: Get(p.ID) returns a copy of p; if p.Current, no other player is current.
func (c *PlayerCollection) Add(p Player) {
	if p.Current {
		for _, other := range c.players {
			other.Current = false
		}
	}
	cp := p
	c.players[p.ID] = &cp
}

// Get returns the player with id, or an unnamed player with that ID if
// none is registered.
func (c *PlayerCollection) Get(id int) Player {
	if p, ok := c.players[id]; ok {
		return *p
	}
	return Player{ID: id}
}

// Has reports whether a player with id is registered.
func (c *PlayerCollection) Has(id int) bool {
	_, ok := c.players[id]
	return ok
}

// SetCurrent marks the player with id as current and clears the flag on
// every other player. An unknown id is registered first.
func (c *PlayerCollection) SetCurrent(id int) {
	if _, ok := c.players[id]; !ok {
		c.players[id] = &Player{ID: id}
	}
	for pid, p := range c.players {
		p.Current = pid == id
	}
}

// Current returns the current player, or the independent player if none is marked.
func (c *PlayerCollection) Current() Player {
	for _, p := range c.players {
		if p.Current {
			return *p
		}
	}
	return Player{ID: IndependentPlayerID}
}

// All returns every player ordered by ID.
func (c *PlayerCollection) All() []Player {
	out := make([]Player, 0, len(c.players))
	for _, p := range c.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered players.
func (c *PlayerCollection) Len() int {
	return len(c.players)
}
