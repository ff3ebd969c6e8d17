/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

// Character is one selectable secret identity.
type Character struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

var defaultCharacters = []Character{
	{Name: "Alice", Photo: "https://randomuser.me/api/portraits/women/10.jpg"},
	{Name: "Bob", Photo: "https://randomuser.me/api/portraits/men/11.jpg"},
	{Name: "Carol", Photo: "https://randomuser.me/api/portraits/women/12.jpg"},
	{Name: "Dave", Photo: "https://randomuser.me/api/portraits/men/13.jpg"},
	{Name: "Eve", Photo: "https://randomuser.me/api/portraits/women/14.jpg"},
	{Name: "Frank", Photo: "https://randomuser.me/api/portraits/men/15.jpg"},
	{Name: "Grace", Photo: "https://randomuser.me/api/portraits/women/16.jpg"},
	{Name: "Heidi", Photo: "https://randomuser.me/api/portraits/women/17.jpg"},
	{Name: "Ivan", Photo: "https://randomuser.me/api/portraits/men/18.jpg"},
	{Name: "Judy", Photo: "https://randomuser.me/api/portraits/women/19.jpg"},
	{Name: "Mallory", Photo: "https://randomuser.me/api/portraits/women/20.jpg"},
	{Name: "Niaj", Photo: "https://randomuser.me/api/portraits/men/21.jpg"},
	{Name: "Olivia", Photo: "https://randomuser.me/api/portraits/women/22.jpg"},
	{Name: "Peggy", Photo: "https://randomuser.me/api/portraits/women/23.jpg"},
	{Name: "Rupert", Photo: "https://randomuser.me/api/portraits/men/24.jpg"},
	{Name: "Sybil", Photo: "https://randomuser.me/api/portraits/women/25.jpg"},
	{Name: "Trent", Photo: "https://randomuser.me/api/portraits/men/26.jpg"},
	{Name: "Uma", Photo: "https://randomuser.me/api/portraits/women/27.jpg"},
	{Name: "Victor", Photo: "https://randomuser.me/api/portraits/men/28.jpg"},
	{Name: "Wendy", Photo: "https://randomuser.me/api/portraits/women/29.jpg"},
	{Name: "Xavier", Photo: "https://randomuser.me/api/portraits/men/30.jpg"},
	{Name: "Yvonne", Photo: "https://randomuser.me/api/portraits/women/31.jpg"},
	{Name: "Zara", Photo: "https://randomuser.me/api/portraits/women/32.jpg"},
	{Name: "Quinn", Photo: "https://randomuser.me/api/portraits/men/33.jpg"},
}

// DefaultCharacters returns a copy of the built-in catalog.
func DefaultCharacters() []Character {
	out := make([]Character, len(defaultCharacters))
	copy(out, defaultCharacters)

	return out
}
