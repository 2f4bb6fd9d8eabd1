// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package textmatch finds any of a fixed set of keywords in free text in a
// single pass (Aho-Corasick). The catalog filters use it to screen show
// titles, synopses and platform names.
package textmatch

import "strings"

// Matcher is an immutable, case-insensitive multi-keyword matcher. It is
// safe for concurrent use once built.
type Matcher struct {
	root     *node
	patterns []string
}

type node struct {
	children map[rune]*node
	failure  *node
	output   []int // indices into patterns ending here
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// New builds a matcher for the given keywords. Empty keywords are ignored
// and matching is case-insensitive.
//
//	blocked := textmatch.New("adult", "18+", "xxx")
//	blocked.Contains("An ADULT drama") // true
func New(keywords ...string) *Matcher {
	m := &Matcher{root: newNode()}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		m.insert(len(m.patterns), kw)
		m.patterns = append(m.patterns, kw)
	}
	m.linkFailures()
	return m
}

func (m *Matcher) insert(index int, keyword string) {
	n := m.root
	for _, ch := range keyword {
		next := n.children[ch]
		if next == nil {
			next = newNode()
			n.children[ch] = next
		}
		n = next
	}
	n.output = append(n.output, index)
}

// linkFailures wires suffix links breadth-first.
func (m *Matcher) linkFailures() {
	queue := make([]*node, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// step advances the automaton by one rune.
func (m *Matcher) step(n *node, ch rune) *node {
	for n != nil && n.children[ch] == nil {
		n = n.failure
	}
	if n == nil {
		return m.root
	}
	return n.children[ch]
}

// First returns the keyword that completes earliest in text.
func (m *Matcher) First(text string) (string, bool) {
	if len(m.patterns) == 0 {
		return "", false
	}
	n := m.root
	for _, ch := range strings.ToLower(text) {
		n = m.step(n, ch)
		if len(n.output) > 0 {
			return m.patterns[n.output[0]], true
		}
	}
	return "", false
}

// Contains reports whether any keyword occurs in text.
func (m *Matcher) Contains(text string) bool {
	_, ok := m.First(text)
	return ok
}

// ContainsAny reports whether any keyword occurs in any of the texts.
func (m *Matcher) ContainsAny(texts ...string) bool {
	for _, t := range texts {
		if m.Contains(t) {
			return true
		}
	}
	return false
}

// All returns each distinct keyword found in text, in order of first
// completion.
func (m *Matcher) All(text string) []string {
	if len(m.patterns) == 0 {
		return nil
	}
	seen := make(map[int]bool)
	var found []string
	n := m.root
	for _, ch := range strings.ToLower(text) {
		n = m.step(n, ch)
		for _, idx := range n.output {
			if !seen[idx] {
				seen[idx] = true
				found = append(found, m.patterns[idx])
			}
		}
	}
	return found
}

// Keywords returns the normalized keyword list.
func (m *Matcher) Keywords() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
