// Package edits generates the strings reachable from a word by one or two single-character edits.
package edits

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Alphabet holds the letters used for substitutions and insertions.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

var letters = []rune(Alphabet)

type split struct {
	left, right []rune
}

// splits returns every (left, right) partition of word, including the empty ends.
func splits(word []rune) []split {
	out := make([]split, 0, len(word)+1)
	for i := 0; i <= len(word); i++ {
		out = append(out, split{left: word[:i], right: word[i:]})
	}
	return out
}

func join(parts ...[]rune) string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]rune, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return string(buf)
}

// Deletes returns the strings formed by removing one character.
func Deletes(word string) []string {
	runes := []rune(word)
	out := make([]string, 0, len(runes))
	for _, s := range splits(runes) {
		if len(s.right) > 0 {
			out = append(out, join(s.left, s.right[1:]))
		}
	}
	return out
}

// Transposes returns the strings formed by swapping two adjacent characters.
func Transposes(word string) []string {
	runes := []rune(word)
	if len(runes) < 2 {
		return []string{}
	}
	out := make([]string, 0, len(runes)-1)
	for _, s := range splits(runes) {
		if len(s.right) > 1 {
			out = append(out, join(s.left, []rune{s.right[1], s.right[0]}, s.right[2:]))
		}
	}
	return out
}

// Replaces returns the strings formed by substituting one character with a letter from Alphabet.
func Replaces(word string) []string {
	runes := []rune(word)
	out := make([]string, 0, len(runes)*len(letters))
	for _, s := range splits(runes) {
		if len(s.right) == 0 {
			continue
		}
		for _, c := range letters {
			out = append(out, join(s.left, []rune{c}, s.right[1:]))
		}
	}
	return out
}

// Inserts returns the strings formed by inserting a letter from Alphabet at any position.
func Inserts(word string) []string {
	runes := []rune(word)
	out := make([]string, 0, (len(runes)+1)*len(letters))
	for _, s := range splits(runes) {
		for _, c := range letters {
			out = append(out, join(s.left, []rune{c}, s.right))
		}
	}
	return out
}

// Single returns the deduplicated set of strings one edit away from word.
// A substitution of a character by itself yields word, so word may be a member.
func Single(word string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	set.Append(Deletes(word)...)
	set.Append(Transposes(word)...)
	set.Append(Replaces(word)...)
	set.Append(Inserts(word)...)
	return set
}

// Expand returns the union of the single-edit sets of every member of words.
func Expand(words mapset.Set[string]) mapset.Set[string] {
	out := mapset.NewThreadUnsafeSet[string]()
	words.Each(func(w string) bool {
		out.Append(Deletes(w)...)
		out.Append(Transposes(w)...)
		out.Append(Replaces(w)...)
		out.Append(Inserts(w)...)
		return false
	})
	return out
}

// Double returns the set of strings two edits away from word.
// The result grows roughly with the square of the word length; callers should only
// compute it when no single-edit candidate matched.
func Double(word string) mapset.Set[string] {
	return Expand(Single(word))
}

// MaxSingle is the upper bound on the size of Single for a word of n characters.
func MaxSingle(n int) int {
	return n + max(n-1, 0) + len(letters)*n + len(letters)*(n+1)
}
